package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Sign computes the hmac header value for a request.
//
// The message is apiKey + timestamp + merchantToken + body, keyed by the API
// secret. body must be the exact bytes sent on the wire: re-encoding the payload
// (even with reordered keys) yields a different digest.
func (g *PayeezyGateway) Sign(body []byte, timestamp int64) string {
	return signPayeezyMessage(g.cfg.APISecret, g.cfg.APIKey, g.cfg.MerchantToken, body, timestamp)
}

func signPayeezyMessage(secret, apiKey, merchantToken string, body []byte, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(apiKey))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte(merchantToken))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
