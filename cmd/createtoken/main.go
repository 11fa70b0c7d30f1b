package main

import (
	"fmt"
	"log"

	"lsst.org.au/signin/config"
	"lsst.org.au/signin/security"
)

// Mints an admin session token without going through the login
// endpoint, for scripting against a running kiosk.
func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	token, err := security.CreateAdminToken([]byte(settings.JWTSecret), 3600)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
