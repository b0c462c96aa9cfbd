package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"medivault/config"
)

// GatewaySMS sends text messages through the configured HTTP gateway.
type GatewaySMS struct {
	client *http.Client
}

// NewGatewaySMS builds the SMS provider with a bounded request timeout so a
// stalled gateway degrades to a recorded failure instead of hanging a tick.
func NewGatewaySMS() *GatewaySMS {
	return &GatewaySMS{client: &http.Client{Timeout: 5 * time.Second}}
}

// Send delivers one SMS. When the gateway is unconfigured it is a
// deterministic no-op failure; outside production the would-be message is
// logged for developer verification.
func (s *GatewaySMS) Send(to, message string) error {
	if config.AppConfig.SMSGatewayURL == "" || config.AppConfig.SMSAPIKey == "" {
		if !config.IsProduction() {
			GetLogger().Sugar().Infof("SMS (gateway not configured) to %s: %s", to, message)
		}
		return fmt.Errorf("sms gateway not configured")
	}

	body, err := json.Marshal(map[string]string{
		"to":      to,
		"from":    config.AppConfig.SMSFrom,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, config.AppConfig.SMSGatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.AppConfig.SMSAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
