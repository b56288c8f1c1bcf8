package httpds

import (
	"context"
	"io"
)

// Remote adapts a Client plus a URL to the datasource.Source contract.
type Remote struct {
	client *Client
	url    string
}

// NewRemote returns a Remote source fetching url through client. A nil
// client gets a default-configured one.
func NewRemote(client *Client, url string) *Remote {
	if client == nil {
		client = NewClient(Config{})
	}
	return &Remote{client: client, url: url}
}

// Open issues the GET and hands back the response body.
func (r *Remote) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := r.client.Get(ctx, r.url)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
