package config

import "log"

func MustNonEmpty(value, envName string) string {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
	return value
}

func MustNonEmptyBytes(value []byte, envName string) []byte {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
	return value
}
