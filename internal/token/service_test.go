package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
)

type jwtClaims struct {
	Iss   string `json:"iss"`
	Sub   string `json:"sub"`
	Name  string `json:"name"`
	Video struct {
		Room           string `json:"room"`
		RoomJoin       bool   `json:"roomJoin"`
		CanPublish     *bool  `json:"canPublish"`
		CanSubscribe   *bool  `json:"canSubscribe"`
		CanPublishData *bool  `json:"canPublishData"`
	} `json:"video"`
	Exp int64 `json:"exp"`
	Nbf int64 `json:"nbf"`
}

func decodeClaims(t *testing.T, jwt string) jwtClaims {
	t.Helper()
	parts := strings.Split(jwt, ".")
	if len(parts) != 3 {
		t.Fatalf("token is not a JWT: %q", jwt)
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var claims jwtClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		t.Fatalf("unmarshal claims: %v", err)
	}
	return claims
}

func TestService_Mint(t *testing.T) {
	svc := NewService("api-key", "api-secret-api-secret-api-secret", "wss://lk.example.com", "voice-nav")

	jwt, err := svc.Mint("walker-1", "my-room")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	claims := decodeClaims(t, jwt)
	if claims.Iss != "api-key" {
		t.Errorf("iss = %q, want api-key", claims.Iss)
	}
	if claims.Sub != "walker-1" {
		t.Errorf("sub = %q, want walker-1", claims.Sub)
	}
	if claims.Name != "Phone" {
		t.Errorf("name = %q, want Phone", claims.Name)
	}
	if claims.Video.Room != "my-room" {
		t.Errorf("room = %q, want my-room", claims.Video.Room)
	}
	if !claims.Video.RoomJoin {
		t.Error("roomJoin grant should be set")
	}
	for name, grant := range map[string]*bool{
		"canPublish":     claims.Video.CanPublish,
		"canSubscribe":   claims.Video.CanSubscribe,
		"canPublishData": claims.Video.CanPublishData,
	} {
		if grant == nil || !*grant {
			t.Errorf("%s grant should be true", name)
		}
	}
	if claims.Exp <= claims.Nbf {
		t.Error("token should have a validity window")
	}
}

func TestService_Mint_Defaults(t *testing.T) {
	svc := NewService("api-key", "api-secret-api-secret-api-secret", "wss://lk.example.com", "voice-nav")

	tests := []struct {
		name         string
		identity     string
		room         string
		wantIdentity string
		wantRoom     string
	}{
		{"both empty", "", "", "mobile-user", "voice-nav"},
		{"blank room falls back", "walker-1", "   ", "walker-1", "voice-nav"},
		{"explicit room kept", "walker-1", "custom", "walker-1", "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwt, err := svc.Mint(tt.identity, tt.room)
			if err != nil {
				t.Fatalf("Mint failed: %v", err)
			}
			claims := decodeClaims(t, jwt)
			if claims.Sub != tt.wantIdentity {
				t.Errorf("identity = %q, want %q", claims.Sub, tt.wantIdentity)
			}
			if claims.Video.Room != tt.wantRoom {
				t.Errorf("room = %q, want %q", claims.Video.Room, tt.wantRoom)
			}
		})
	}
}

func TestService_Mint_MissingKeys(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		secret string
	}{
		{"no key", "", "secret"},
		{"no secret", "key", ""},
		{"neither", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.key, tt.secret, "wss://lk.example.com", "voice-nav")
			if _, err := svc.Mint("walker-1", ""); err == nil {
				t.Error("Mint should fail without both API key and secret")
			}
		})
	}
}

func TestNewService_DefaultRoom(t *testing.T) {
	svc := NewService("k", "s", "wss://lk.example.com", "")
	if svc.defaultRoom != DefaultRoom {
		t.Errorf("defaultRoom = %q, want %q", svc.defaultRoom, DefaultRoom)
	}
}
