package constants

import "os"

const NumStrings = 6

// frets are searched in [0, MaxFret]
const MaxFret = 15

const Muted = -1

const DefaultTopN = 3

const DefaultGeminiModel = "gemini-3.0-flash-preview"

func GetConfigPath() string {
	path := os.Getenv("FRETNOT_CONFIG")
	if path != "" {
		return path
	}
	return "./fretnot.yaml"
}

func GetAddr() string {
	addr := os.Getenv("FRETNOT_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

func GetCORSOrigin() string {
	origin := os.Getenv("CORS_ORIGIN")
	if origin != "" {
		return origin
	}
	return "*"
}

// GetGeminiAPIKey returns "" when unset; the coach is disabled in that case.
func GetGeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func GetGeminiModel() string {
	model := os.Getenv("GEMINI_MODEL")
	if model != "" {
		return model
	}
	return DefaultGeminiModel
}
