package common

import (
	"os"
)

const defaultServiceName = "rugcraft"

func GetServiceName() string {
	name := os.Getenv("SERVICE_NAME")
	if name == "" {
		return defaultServiceName
	}
	return name
}

func GetServiceInstance() string {
	instance := os.Getenv("SERVICE_INSTANCE")
	if instance != "" {
		return instance
	}
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
