package mpesa

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client talks to the M-Pesa gateway used for post-confirmation receipt
// pushes. Pushes are best effort; the order lifecycle never blocks on them.
type Client struct {
	BaseURL    string
	Username   string
	Password   string
	ShortCode  string
	HTTPClient *http.Client
}

type ReceiptRequest struct {
	ShortCode string  `json:"short_code"`
	Reference string  `json:"reference"`
	OrderID   uint    `json:"order_id"`
	Amount    float64 `json:"amount"`
}

type ReceiptResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ReceiptID string `json:"receipt_id"`
		Status    string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, username, password, shortCode string) *Client {
	return &Client{
		BaseURL:   baseURL,
		Username:  username,
		Password:  password,
		ShortCode: shortCode,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendReceipt pushes a payment receipt for a confirmed order.
func (c *Client) SendReceipt(orderID uint, amount float64) error {
	requestData := ReceiptRequest{
		ShortCode: c.ShortCode,
		Reference: uuid.NewString(),
		OrderID:   orderID,
		Amount:    amount,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt request: %w", err)
	}

	url := fmt.Sprintf("%s/receipts", c.BaseURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	auth := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var response ReceiptResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("receipt push rejected: %s", response.Message)
	}
	return nil
}
