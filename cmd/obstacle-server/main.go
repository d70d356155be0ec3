package main

import "github.com/navassist/nav-backend/internal/bootstrap"

func main() {
	bootstrap.RunObstacle()
}
