package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES   string
	APP_PORT      string
	JWTSecret     string
	JWTExpiration int

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SeedDemo bool

	CookieSecure   bool
	CookieHTTPOnly bool
	CookieSameSite string

	AuditLocations []string

	allowedOrigins map[string]bool
)

// defaultLocations is the warehouse list the client rosters are scoped to.
// Override with AUDIT_LOCATIONS (comma separated) when a deployment adds sites.
var defaultLocations = []string{
	"Noida WH",
	"Mumbai WH",
	"Hyderabad WH",
	"Bengaluru WH",
	"Gurugram WH",
	"Delhi Retail",
}

// LoadConfig reads the .env file and initializes the configuration variables.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Server Configuration
	MAIN_ROUTES = getEnv("MAIN_ROUTES", "/api/v1")
	APP_PORT = getEnv("APP_PORT", "9000")

	// JWT Configuration
	JWTSecret = getEnv("JWT_SECRET", "audit_recon_key_secret")
	JWTExpiration = getEnvAsInt("JWT_EXPIRATION", 86400)

	// Database Configuration
	DBDriver = getEnv("DB_DRIVER", "mssql")
	DBHost = getEnv("DB_HOST", "localhost")
	DBPort = getEnv("DB_PORT", "1433")
	DBUser = getEnv("DB_USER", "golang")
	DBPassword = getEnv("DB_PASSWORD", "P@ssw012d!")
	DBName = getEnv("DB_NAME", "audit_recon")

	SeedDemo = getEnvAsBool("SEED_DEMO", false)

	// Cookie Configuration
	CookieSecure = getEnvAsBool("COOKIE_SECURE", true)
	CookieHTTPOnly = getEnvAsBool("COOKIE_HTTPONLY", false)
	CookieSameSite = getEnv("COOKIE_SAMESITE", "None")

	loadAuditLocations()
	loadAllowedOrigins()
}

// getEnv reads an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as an integer.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool reads an environment variable as a boolean.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func loadAuditLocations() {
	locationsStr := getEnv("AUDIT_LOCATIONS", "")
	if locationsStr == "" {
		AuditLocations = defaultLocations
		return
	}

	AuditLocations = nil
	for _, loc := range strings.Split(locationsStr, ",") {
		loc = strings.TrimSpace(loc)
		if loc != "" {
			AuditLocations = append(AuditLocations, loc)
		}
	}
}

// IsValidLocation reports whether loc is one of the configured audit locations.
func IsValidLocation(loc string) bool {
	locations := AuditLocations
	if len(locations) == 0 {
		locations = defaultLocations
	}
	for _, l := range locations {
		if l == loc {
			return true
		}
	}
	return false
}

func loadAllowedOrigins() {
	allowedOrigins = make(map[string]bool)
	originsStr := getEnv("ALLOWED_ORIGINS", "")

	if originsStr == "" {
		allowedOrigins = map[string]bool{
			"http://127.0.0.1:3000": true,
		}
		return
	}

	origins := strings.Split(originsStr, ",")
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
}

func SetupCORS(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}

func GetTokenCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: CookieHTTPOnly,
		SameSite: CookieSameSite,
		Path:     "/",
		Secure:   CookieSecure,
	}
}
