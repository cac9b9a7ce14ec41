package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"rugcraft/common"
	"rugcraft/session"
)

// Order is the slice of the commerce backend's order payload this service
// cares about. The order system stays a black box reached over HTTP.
type Order struct {
	ID    string      `json:"id"`
	Items []OrderItem `json:"items"`
}

type OrderItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	SKU      string `json:"sku"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type orderBody struct {
	Order Order `json:"order"`
}

var FetchOrderFunc = FetchOrder

// FetchOrder loads an order from the commerce backend named by
// ORDER_SERVICE_URL, forwarding the caller's token.
func FetchOrder(orderID string, s *session.Session) (*Order, error) {
	orderServiceURL := os.Getenv("ORDER_SERVICE_URL")
	if orderServiceURL == "" {
		return nil, errors.New("environment variable ORDER_SERVICE_URL is empty")
	}

	headers := http.Header{}
	if s != nil && s.Token != "" {
		headers.Set("Authorization", "Bearer "+s.Token)
	}
	respBody, err := common.HttpInvokeJson(http.MethodGet, orderServiceURL+"/admin/orders/"+orderID, headers, "")
	if err != nil {
		return nil, err
	}

	body := orderBody{}
	if err := json.Unmarshal([]byte(respBody), &body); err != nil {
		return nil, err
	}
	return &body.Order, nil
}
