package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type dbCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// retrieveCredentials prefers DB_USERNAME/DB_PASSWORD from the environment
// and falls back to the Secrets Manager secret named by secretID.
func retrieveCredentials(secretID string) (string, string, error) {
	if user, password := os.Getenv("DB_USERNAME"), os.Getenv("DB_PASSWORD"); user != "" && password != "" {
		return user, password, nil
	}
	if secretID == "" {
		return "", "", fmt.Errorf("db credentials: DB_USERNAME/DB_PASSWORD or DB_SECRET_ID must be set")
	}

	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("db credentials: %w", err)
	}
	out, err := secretsmanager.NewFromConfig(cfg).GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("db credentials: %w", err)
	}

	var creds dbCredentials
	if err := json.Unmarshal([]byte(*out.SecretString), &creds); err != nil {
		return "", "", fmt.Errorf("db credentials: %w", err)
	}
	return creds.Username, creds.Password, nil
}
