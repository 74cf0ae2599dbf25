// Package flash carries one-shot status messages across redirects using a
// short-lived cookie, standing in for the server-side session flash the
// templates expect.
package flash

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

// Message is one pending notice with its display category.
type Message struct {
	Category string
	Text     string
}

const (
	cookieSuccess = "flash_success"
	cookieError   = "flash_error"
)

// Success queues a success notice for the next rendered page.
func Success(c *gin.Context, text string) {
	set(c, cookieSuccess, text)
}

// Error queues an error notice for the next rendered page.
func Error(c *gin.Context, text string) {
	set(c, cookieError, text)
}

// Take consumes and returns the pending messages, clearing their cookies.
func Take(c *gin.Context) []Message {
	var messages []Message
	for _, pair := range []struct{ cookie, category string }{
		{cookieSuccess, "success"},
		{cookieError, "error"},
	} {
		raw, err := c.Cookie(pair.cookie)
		if err != nil || raw == "" {
			continue
		}
		if text, err := url.QueryUnescape(raw); err == nil {
			messages = append(messages, Message{Category: pair.category, Text: text})
		}
		c.SetCookie(pair.cookie, "", -1, "/", "", false, false)
	}
	return messages
}

func set(c *gin.Context, cookie, text string) {
	c.SetCookie(cookie, url.QueryEscape(text), 60, "/", "", false, false)
}
