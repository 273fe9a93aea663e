// package mpv drives an external mpv process over its JSON IPC socket and
// adapts it to the playback.Player interface.
//
// mpv is launched paused with --input-ipc-server; every request is a JSON
// line carrying a request_id, and a single reader goroutine matches
// responses back to callers. Asynchronous playback events on the same
// socket are discarded.
package mpv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/jumptools/airtime/internal/playback"
	"github.com/jumptools/airtime/internal/shared"
	"golang.org/x/time/rate"
)

var _ playback.Player = (*Client)(nil)

const (
	// requestTimeout bounds how long a caller waits for mpv to answer.
	requestTimeout = 2 * time.Second
	// dialRetries covers mpv creating the socket after process start.
	dialRetries = 50
	dialBackoff = 100 * time.Millisecond
)

type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type response struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID int64           `json:"request_id"`
	Event     string          `json:"event"`
}

// Client is a connection to one mpv process.
type Client struct {
	conn net.Conn

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan response
	closed  bool

	// Position and duration reads happen on every UI tick; the limiter caps
	// IPC traffic and serves the cached value when over budget.
	limiter *rate.Limiter

	cacheMu sync.Mutex
	lastPos float64
	lastDur float64
}

// SocketPath returns a per-process default IPC socket path under the
// system temp directory.
func SocketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("airtime-mpv-%d.sock", os.Getpid()))
}

// Launch starts mpv paused with its IPC server on socketPath and the given
// video queued. The caller owns the returned process.
func Launch(binary, socketPath, videoPath string) (*exec.Cmd, error) {
	if binary == "" {
		binary = "mpv"
	}

	cmd := exec.Command(binary,
		"--input-ipc-server="+socketPath,
		"--pause",
		"--keep-open=yes",
		"--force-window=yes",
		videoPath,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start mpv: %w", err)
	}

	return cmd, nil
}

// Dial connects to an mpv IPC socket, retrying while the socket file is
// still being created.
func Dial(socketPath string) (*Client, error) {
	var conn net.Conn
	var err error

	for i := 0; i < dialRetries; i++ {
		conn, err = net.Dial("unix", socketPath)
		if err == nil {
			break
		}
		time.Sleep(dialBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mpv socket %s: %w", socketPath, err)
	}

	c := &Client{
		conn:    conn,
		pending: make(map[int64]chan response),
		limiter: rate.NewLimiter(rate.Limit(20), 5),
	}
	go c.readLoop()

	return c, nil
}

// Close shuts down the IPC connection. In-flight requests fail with
// [shared.ErrPlayerGone].
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()

	return c.conn.Close()
}

// readLoop is the single reader: it matches responses to waiting callers by
// request_id and drops event notifications.
func (c *Client) readLoop() {
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		var resp response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			continue
		}
		if resp.Event != "" {
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.RequestID]
		if ok {
			delete(c.pending, resp.RequestID)
		}
		c.mu.Unlock()

		if ok {
			ch <- resp
			close(ch)
		}
	}

	// Socket closed or errored: fail everything still waiting.
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

func (c *Client) command(args ...any) (json.RawMessage, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, shared.ErrPlayerGone
	}
	c.nextID++
	id := c.nextID
	ch := make(chan response, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	payload, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to encode mpv command: %w", err)
	}
	payload = append(payload, '\n')

	if _, err := c.conn.Write(payload); err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, fmt.Errorf("failed to write mpv command: %w", err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, shared.ErrPlayerGone
		}
		if resp.Error != "success" {
			return nil, fmt.Errorf("mpv rejected command: %s", resp.Error)
		}
		return resp.Data, nil
	case <-time.After(requestTimeout):
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, shared.ErrRequestTimedOut
	}
}

func (c *Client) getFloat(property string) (float64, error) {
	data, err := c.command("get_property", property)
	if err != nil {
		return 0, err
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", property, err)
	}
	return v, nil
}

// Load replaces the current file.
func (c *Client) Load(path string) error {
	_, err := c.command("loadfile", path, "replace")
	return err
}

// SetPaused sets the pause property.
func (c *Client) SetPaused(paused bool) error {
	_, err := c.command("set_property", "pause", paused)
	return err
}

// Seek jumps to an absolute position with exact (non-keyframe) precision,
// which frame stepping depends on.
func (c *Client) Seek(seconds float64) error {
	_, err := c.command("seek", seconds, "absolute+exact")
	return err
}

// SetRate sets the speed property.
func (c *Client) SetRate(r float64) error {
	_, err := c.command("set_property", "speed", r)
	return err
}

// Position returns the playback clock. Reads beyond the rate budget serve
// the last observed value instead of hitting the socket.
func (c *Client) Position() (float64, error) {
	if !c.limiter.Allow() {
		c.cacheMu.Lock()
		defer c.cacheMu.Unlock()
		return c.lastPos, nil
	}

	pos, err := c.getFloat("time-pos")
	if err != nil {
		return 0, err
	}

	c.cacheMu.Lock()
	c.lastPos = pos
	c.cacheMu.Unlock()
	return pos, nil
}

// Duration returns the file duration. Like Position, it is rate limited
// behind the cached value.
func (c *Client) Duration() (float64, error) {
	c.cacheMu.Lock()
	cached := c.lastDur
	c.cacheMu.Unlock()

	if cached > 0 && !c.limiter.Allow() {
		return cached, nil
	}

	dur, err := c.getFloat("duration")
	if err != nil {
		return 0, err
	}

	c.cacheMu.Lock()
	c.lastDur = dur
	c.cacheMu.Unlock()
	return dur, nil
}
