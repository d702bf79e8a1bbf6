package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"speakerbureau/internal/models"
)

// Notifier pushes best-effort ops notifications to a Telegram chat. A nil
// receiver or empty token turns every call into a no-op, so callers never
// have to guard.
type Notifier struct {
	token   string
	chatID  int64
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewNotifier(botToken string, opsChatID int64, log *zap.Logger) *Notifier {
	return &Notifier{
		token:   botToken,
		chatID:  opsChatID,
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", botToken),
		client:  &http.Client{},
		log:     log,
	}
}

type tgResp struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (n *Notifier) sendMessage(text string) error {
	if n == nil || n.token == "" || n.chatID == 0 {
		return nil
	}
	body := map[string]any{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, n.baseURL+"/sendMessage", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var api tgResp
	_ = json.Unmarshal(respBody, &api)
	if resp.StatusCode != http.StatusOK || !api.Ok {
		return fmt.Errorf("telegram sendMessage failed: status=%d ok=%v desc=%s", resp.StatusCode, api.Ok, api.Description)
	}
	return nil
}

// DealWon announces a won deal to the ops chat.
func (n *Notifier) DealWon(d *models.Deal) {
	if n == nil {
		return
	}
	msg := fmt.Sprintf("🏆 Deal #%d won: %s (%s), $%.2f",
		d.ID, d.EventTitle, d.ClientName, d.DealValue)
	if err := n.sendMessage(msg); err != nil {
		n.log.Warn("telegram notification failed", zap.Int("deal_id", d.ID), zap.Error(err))
	}
}

// SpeakerResponded announces a speaker's firm-offer response.
func (n *Notifier) SpeakerResponded(o *models.FirmOffer, confirmed bool) {
	if n == nil {
		return
	}
	verdict := "declined"
	if confirmed {
		verdict = "confirmed"
	}
	msg := fmt.Sprintf("🎤 Firm offer #%d (proposal #%d): speaker %s", o.ID, o.ProposalID, verdict)
	if o.SpeakerNotes != "" {
		msg += "\nNotes: " + o.SpeakerNotes
	}
	if err := n.sendMessage(msg); err != nil {
		n.log.Warn("telegram notification failed", zap.Int("offer_id", o.ID), zap.Error(err))
	}
}
