package api

import (
	"net/http"
)

type oauth2Opt struct {
	prefix string
	token  string
}

// OAuth2 sets the Authorization header of every request. An empty token sends
// the request unauthenticated.
func OAuth2(prefix, token string) *oauth2Opt {
	return &oauth2Opt{prefix: prefix, token: token}
}

func (opt *oauth2Opt) Do(client defaultClient, req *http.Request) {
	if opt.token == "" {
		return
	}

	req.Header.Set("Authorization", opt.prefix+" "+opt.token)
}

type userAgentOpt struct {
	agent string
}

func UserAgent(agent string) *userAgentOpt {
	return &userAgentOpt{agent: agent}
}

func (opt *userAgentOpt) Do(client defaultClient, req *http.Request) {
	req.Header.Set("User-Agent", opt.agent)
}
