package token

import (
	"errors"
	"strings"
	"time"

	"github.com/livekit/protocol/auth"
)

const (
	DefaultIdentity = "mobile-user"
	DefaultRoom     = "voice-nav"

	participantName = "Phone"
	tokenValidity   = 24 * time.Hour
)

// Service mints LiveKit room access tokens for the mobile client.
type Service struct {
	apiKey      string
	apiSecret   string
	url         string
	defaultRoom string
}

func NewService(apiKey, apiSecret, url, defaultRoom string) *Service {
	if defaultRoom == "" {
		defaultRoom = DefaultRoom
	}
	return &Service{
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		url:         url,
		defaultRoom: defaultRoom,
	}
}

func (s *Service) URL() string {
	return s.url
}

// Mint signs a join token for the given identity and room. A blank room
// falls back to the configured default.
func (s *Service) Mint(identity, room string) (string, error) {
	if s.apiKey == "" || s.apiSecret == "" {
		return "", errors.New("LIVEKIT_API_KEY and LIVEKIT_API_SECRET must be set")
	}

	room = strings.TrimSpace(room)
	if room == "" {
		room = s.defaultRoom
	}
	if identity == "" {
		identity = DefaultIdentity
	}

	canPublish := true
	canSubscribe := true
	canPublishData := true
	grant := &auth.VideoGrant{
		RoomJoin:       true,
		Room:           room,
		CanPublish:     &canPublish,
		CanSubscribe:   &canSubscribe,
		CanPublishData: &canPublishData,
	}

	at := auth.NewAccessToken(s.apiKey, s.apiSecret)
	at.SetIdentity(identity).
		SetName(participantName).
		SetValidFor(tokenValidity).
		SetVideoGrant(grant)

	return at.ToJWT()
}
