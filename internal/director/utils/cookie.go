package utils

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const clientCookieTTL = 12 * time.Hour

func CreateClientIDCookieHeader(clientID, cookieName string) http.Header {
	var clientIDHeader = http.Header{}
	clientIdCookie := &http.Cookie{
		Name:     cookieName,
		Value:    clientID,
		Path:     "/",
		Expires:  time.Now().Add(clientCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if v := clientIdCookie.String(); v != "" {
		clientIDHeader.Add("Set-Cookie", v)
	}
	return clientIDHeader
}

// ClientIDFromCookie returns the client id a browser presented, if it is a
// well formed uuid.
func ClientIDFromCookie(r *http.Request, cookieName string) (string, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
