package clarice

// Set at build time via -ldflags "-X github.com/AeriaVelocity/clarice.Version=...".
var (
	Version   = "0.4.0-dev"
	BuildDate = "unknown"
)
