package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jacklaaa89/trakt"
	"github.com/jacklaaa89/trakt/authorization"
)

func loadOrGenerateToken(clientSecret, tokenPath string) (*trakt.Token, error) {
	token, err := loadToken(tokenPath)
	if errors.Is(err, fs.ErrNotExist) {
		return generateToken(clientSecret, tokenPath)
	}
	if err != nil {
		return nil, err
	}
	return token, nil
}

func loadToken(tokenPath string) (*trakt.Token, error) {
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	var token trakt.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	return &token, nil
}

func generateToken(clientSecret, tokenPath string) (*trakt.Token, error) {
	deviceCode, err := authorization.NewCode(nil)
	if err != nil {
		return nil, fmt.Errorf("generating device code: %w", err)
	}

	fmt.Printf("Please go to %s and enter the code: %s\n", deviceCode.VerificationURL, deviceCode.UserCode)

	token, err := authorization.Poll(&trakt.PollCodeParams{
		Code:         deviceCode.Code,
		Interval:     deviceCode.Interval,
		ExpiresIn:    deviceCode.ExpiresIn,
		ClientSecret: clientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("polling for token: %w", err)
	}

	if err := saveToken(token, tokenPath); err != nil {
		return nil, err
	}
	return token, nil
}

// saveToken persists the token owner-readable only, it is a credential.
func saveToken(token *trakt.Token, tokenPath string) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if err := os.WriteFile(tokenPath, data, 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}
