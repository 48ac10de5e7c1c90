package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/helper-matching/internal/models"
)

// PushDispatcher tries the helper's live websocket first and falls back to an
// HTTP push endpoint (FCM-style) for helpers whose app is in the background.
type PushDispatcher struct {
	Endpoint string
	Key      string
	Client   *http.Client
	WS       *WSRegistry
}

func NewPushDispatcher(endpoint, key string, ws *WSRegistry) *PushDispatcher {
	return &PushDispatcher{Endpoint: endpoint, Key: key, Client: &http.Client{Timeout: 3 * time.Second}, WS: ws}
}

func (p *PushDispatcher) Offer(helperID string, offer models.MatchOffer) error {
	if p.WS != nil {
		if err := p.WS.Offer(helperID, offer); err == nil {
			return nil
		}
		// No session or a dead socket; fall through to push.
	}
	if p.Endpoint == "" {
		return ErrNoSession
	}
	body := map[string]interface{}{
		"message": map[string]interface{}{
			"helper_id": helperID,
			"data":      offer,
		},
	}
	b, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, p.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.Key != "" {
		req.Header.Set("Authorization", "Bearer "+p.Key)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.New("push endpoint returned " + resp.Status)
	}
	return nil
}
