package monsterapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gatchaworks/arena/internal/services/shared/svcclient"
)

const serviceName = "monster"

// Client calls the monster service.
type Client struct {
	http *svcclient.Client
}

// NewClient builds a monster service client.
func NewClient(baseURL string, tokens svcclient.TokenIssuer, opts ...svcclient.Option) (*Client, error) {
	c, err := svcclient.New(serviceName, baseURL, tokens, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

// CreateMonster creates a monster owned by username.
func (c *Client) CreateMonster(ctx context.Context, username string, req CreateMonsterRequest) (Monster, error) {
	var out Monster
	if err := c.http.Do(ctx, http.MethodPost, "/monsters", username, req, &out); err != nil {
		return Monster{}, err
	}
	return out, nil
}

// FetchMonsters returns the monsters among ids owned by username.
func (c *Client) FetchMonsters(ctx context.Context, username string, ids []string) ([]Monster, error) {
	var out BatchResponse
	if err := c.http.Do(ctx, http.MethodPost, "/monsters/batch", username, BatchRequest{IDs: ids}, &out); err != nil {
		return nil, err
	}
	return out.Monsters, nil
}

// GrantExperience rewards monster id, owned by username, with amount XP.
func (c *Client) GrantExperience(ctx context.Context, username, id string, amount float64) (Monster, error) {
	path := fmt.Sprintf("/monsters/%s/experience/reward?amount=%g", url.PathEscape(id), amount)
	var out Monster
	if err := c.http.Do(ctx, http.MethodPost, path, username, nil, &out); err != nil {
		return Monster{}, err
	}
	return out, nil
}
