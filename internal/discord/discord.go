// Package discord publishes alerts to a single Discord channel via the
// gateway session. Errors are classified so the caller can distinguish a
// temporary rate limit from a revoked permission.
package discord

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/parisky90/DiscordBot/internal/logger"
)

// ErrForbidden means the bot lost permission to post in the channel.
// Retrying is pointless until a human fixes the channel permissions.
var ErrForbidden = errors.New("discord: missing channel permissions")

// RateLimitedError reports how long Discord asked us to wait.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("discord: rate limited, retry after %s", e.RetryAfter)
}

// Client is a publisher bound to one channel.
type Client struct {
	session   *discordgo.Session
	channelID string
}

// New creates the client without connecting. Call Open before publishing.
func New(botToken, channelID string) (*Client, error) {
	if botToken == "" {
		return nil, errors.New("discord: bot token is required")
	}
	if channelID == "" {
		return nil, errors.New("discord: channel ID is required")
	}
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	return &Client{session: session, channelID: channelID}, nil
}

// Open connects the gateway session and verifies the target channel is
// reachable. Publishing before Open returns an error from discordgo.
func (c *Client) Open() error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	ch, err := c.session.Channel(c.channelID)
	if err != nil {
		c.session.Close()
		return fmt.Errorf("resolve channel %s: %w", c.channelID, classify(err))
	}
	logger.Info("discord session ready", "channel", ch.ID, "guild", ch.GuildID)
	return nil
}

func (c *Client) Close() error {
	return c.session.Close()
}

// PublishEmbed posts one alert embed to the channel.
func (c *Client) PublishEmbed(title, url, description string, color int) error {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		URL:         url,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	_, err := c.session.ChannelMessageSendEmbed(c.channelID, embed)
	if err != nil {
		return classify(err)
	}
	return nil
}

// PublishStatus posts a plain text message, used for startup and heartbeat.
func (c *Client) PublishStatus(msg string) error {
	_, err := c.session.ChannelMessageSend(c.channelID, msg)
	if err != nil {
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	var rl *discordgo.RateLimitError
	if errors.As(err, &rl) {
		return &RateLimitedError{RetryAfter: rl.RetryAfter}
	}
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil && rest.Response.StatusCode == http.StatusForbidden {
		return ErrForbidden
	}
	return err
}
