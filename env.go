package main

import (
	"os"
	"strings"
)

// Set with -ldflags "-X main.defaultRecipient=...".
var defaultRecipient string

const fallbackRecipient = "Cel"

func loadEmbeddedEnv() {
	if defaultRecipient != "" {
		if _, exists := os.LookupEnv("HEYTMLBOY_RECIPIENT"); !exists {
			_ = os.Setenv("HEYTMLBOY_RECIPIENT", defaultRecipient)
		}
	}
}

func defaultRecipientName() string {
	if name := strings.TrimSpace(os.Getenv("HEYTMLBOY_RECIPIENT")); name != "" {
		return name
	}
	return fallbackRecipient
}
