package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port           int           `yaml:"port"`
	MongoURI       string        `yaml:"mongoUri"`
	MongoDB        string        `yaml:"mongoDb"`
	JWTKey         string        `yaml:"jwtKey"`
	TokenTTL       time.Duration `yaml:"tokenTtl"`
	Debug          bool          `yaml:"debug"`
	LogLevel       string        `yaml:"logLevel"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	BcryptCost     int           `yaml:"bcryptCost"`
	AdminEmail     string        `yaml:"adminEmail"`
	AdminPassword  string        `yaml:"adminPassword"`
}

// LoadConfig 加载配置：默认值 < CONFIG_PATH 指定的 YAML 文件 < 环境变量
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           8080,
		MongoURI:       "mongodb://127.0.0.1:27017",
		MongoDB:        "sales_tracker",
		JWTKey:         "your-secret-key", // 实际环境应替换为安全密钥
		TokenTTL:       7 * 24 * time.Hour,
		Debug:          false,
		LogLevel:       "info",
		AllowedOrigins: []string{"http://localhost:3000"},
		BcryptCost:     10,
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("无效的 PORT: %w", err)
		}
		cfg.Port = port
	}
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.MongoDB = getEnv("MONGO_DB", cfg.MongoDB)
	cfg.JWTKey = getEnv("JWT_KEY", cfg.JWTKey)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.AdminPassword)
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Debug = v == "debug"
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("无效的 TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("无效的 BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("端口超出范围: %d", cfg.Port)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL 必须大于 0")
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	return nil
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
