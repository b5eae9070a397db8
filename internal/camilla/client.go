package camilla

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lwmacct/251124-camilla-volume/internal/logger"
)

// CommandGetVolume asks the daemon for the current main volume.
const CommandGetVolume = "GetVolume"

var (
	ErrConnection        = errors.New("cannot connect to CamillaDSP")
	ErrConnectionClosed  = errors.New("connection closed before reply")
	ErrTimeout           = errors.New("timed out waiting for CamillaDSP")
	ErrMalformedResponse = errors.New("malformed response")
)

const closeGracePeriod = time.Second

// Options configures a Client.
type Options struct {
	Host    string        // Daemon address, default 127.0.0.1
	Timeout time.Duration // Bound on one whole exchange, 0 waits forever
	Logger  *logger.Logger
}

// Client talks to a CamillaDSP websocket server.
type Client struct {
	host    string
	timeout time.Duration
	dialer  *websocket.Dialer
	log     *logger.Logger
}

// NewClient creates a client from opts.
func NewClient(opts Options) *Client {
	if opts.Host == "" {
		opts.Host = "127.0.0.1"
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Client{
		host:    opts.Host,
		timeout: opts.Timeout,
		// local daemon, never proxied
		dialer: &websocket.Dialer{},
		log:    opts.Logger,
	}
}

// URL returns the websocket endpoint for port.
func (c *Client) URL(port int) string {
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(c.host, strconv.Itoa(port)),
	}
	return u.String()
}

// GetVolume queries the current volume from the daemon listening on port.
func (c *Client) GetVolume(ctx context.Context, port int) (Volume, error) {
	body, err := c.Do(ctx, port, CommandGetVolume)
	if err != nil {
		return Volume{}, err
	}
	return parseVolume(body)
}

// Do sends command to the daemon on port and returns the reply member named
// after the command. One connection is opened per call and always closed
// before returning.
func (c *Client) Do(ctx context.Context, port int, command string) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.URL(port)
	c.log.Debug().Str("url", endpoint).Str("command", command).Msg("connecting")

	conn, resp, err := c.dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: dial %s: %w", ErrTimeout, endpoint, err)
		}
		return nil, fmt.Errorf("%w: dial %s: %w", ErrConnection, endpoint, err)
	}
	defer c.close(conn)

	// ReadMessage ignores ctx; closing the socket unblocks it.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.UnderlyingConn().Close()
	})
	defer stop()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}

	msg, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return nil, exchangeError(ctx, "send", err)
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, exchangeError(ctx, "receive", err)
	}
	c.log.Debug().RawJSON("reply", jsonOrQuoted(data)).Msg("received")

	var reply map[string]json.RawMessage
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	body, ok := reply[command]
	if !ok {
		return nil, fmt.Errorf("%w: no %s in reply", ErrMalformedResponse, command)
	}
	return body, nil
}

// close sends a normal closure frame and releases the socket.
func (c *Client) close(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod)); err != nil {
		c.log.Debug().Err(err).Msg("close frame not sent")
	}
	if err := conn.Close(); err != nil {
		c.log.Debug().Err(err).Msg("close failed")
	}
}

func exchangeError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %w", ErrTimeout, op, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s: %w", ErrTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrConnectionClosed, op, err)
}

func jsonOrQuoted(data []byte) []byte {
	if json.Valid(data) {
		return data
	}
	quoted, _ := json.Marshal(string(data))
	return quoted
}
