package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	ServerPort      string
	ChainAPIURL     string
	ChainAdminAddr  string
	StarterCourseID string
	ResumeBaseURI   string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "aptos_institute"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		ChainAPIURL:     getEnv("CHAIN_API_URL", ""),
		ChainAdminAddr:  getEnv("CHAIN_ADMIN_ADDRESS", ""),
		StarterCourseID: getEnv("STARTER_COURSE_ID", "course-1"),
		ResumeBaseURI:   getEnv("RESUME_BASE_URI", "https://aptos-institute.vercel.app/resume/"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
