package playerapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gatchaworks/arena/internal/services/shared/svcclient"
)

const serviceName = "player"

// Client calls the player service.
type Client struct {
	http *svcclient.Client
}

// NewClient builds a player service client.
func NewClient(baseURL string, tokens svcclient.TokenIssuer, opts ...svcclient.Option) (*Client, error) {
	c, err := svcclient.New(serviceName, baseURL, tokens, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

func playerPath(username string) string {
	return "/players/" + url.PathEscape(username)
}

// GetPlayer loads username's profile.
func (c *Client) GetPlayer(ctx context.Context, username string) (Player, error) {
	var out Player
	if err := c.http.Do(ctx, http.MethodGet, playerPath(username), username, nil, &out); err != nil {
		return Player{}, err
	}
	return out, nil
}

// GrantExperience rewards username with amount XP.
func (c *Client) GrantExperience(ctx context.Context, username string, amount float64) (Player, error) {
	path := fmt.Sprintf("%s/experience?amount=%g", playerPath(username), amount)
	var out Player
	if err := c.http.Do(ctx, http.MethodPost, path, username, nil, &out); err != nil {
		return Player{}, err
	}
	return out, nil
}

// AddMonster records monsterID in username's inventory.
func (c *Client) AddMonster(ctx context.Context, username, monsterID string) (Player, error) {
	var out Player
	path := playerPath(username) + "/monsters/" + url.PathEscape(monsterID)
	if err := c.http.Do(ctx, http.MethodPost, path, username, nil, &out); err != nil {
		return Player{}, err
	}
	return out, nil
}

// RemoveMonster drops monsterID from username's inventory.
func (c *Client) RemoveMonster(ctx context.Context, username, monsterID string) (Player, error) {
	var out Player
	path := playerPath(username) + "/monsters/" + url.PathEscape(monsterID)
	if err := c.http.Do(ctx, http.MethodDelete, path, username, nil, &out); err != nil {
		return Player{}, err
	}
	return out, nil
}
