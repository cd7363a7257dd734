package services

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/ruralpay/ledger/internal/models"
)

const depositQRSize = 256

// DepositQR is a scannable description of where to pay into a ledger
type DepositQR struct {
	Code  string `json:"code"`
	Image string `json:"image"` // base64 PNG
}

type depositPayload struct {
	BankCode      string `json:"bankCode"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	Amount        int64  `json:"amount,omitempty"`
	Timestamp     int64  `json:"timestamp"`
	Nonce         string `json:"nonce"`
}

type QRService struct {
	now func() time.Time
}

func NewQRService() *QRService {
	return &QRService{now: time.Now}
}

// GenerateDepositQR encodes the ledger's virtual account and an optional requested amount.
func (s *QRService) GenerateDepositQR(ledger *models.Ledger, amount int64) (*DepositQR, error) {
	if amount < 0 {
		return nil, models.ErrInvalidAmount
	}

	jsonData, err := json.Marshal(depositPayload{
		BankCode:      ledger.BankCode,
		AccountNumber: ledger.VirtualAccount,
		AccountName:   ledger.Name,
		Amount:        amount,
		Timestamp:     s.now().Unix(),
		Nonce:         s.generateNonce(),
	})
	if err != nil {
		return nil, err
	}

	code := base64.URLEncoding.EncodeToString(jsonData)

	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(depositQRSize)); err != nil {
		return nil, err
	}

	return &DepositQR{
		Code:  code,
		Image: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

func (s *QRService) generateNonce() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
