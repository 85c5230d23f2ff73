package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// LeadMagnetProjectType tags contact submissions created through the
// lead-capture popup.
const LeadMagnetProjectType = "Lead Magnet Download"

// GuideFileName is the download name of the lead magnet.
const GuideFileName = "10-Essential-Steps-Website-Guide.txt"

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
