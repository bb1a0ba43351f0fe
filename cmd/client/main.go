package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"

	"chat-relay/client"
	"chat-relay/infrastructure/ws"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `env:"CHAT_SERVER_ADDR,default=localhost:3000"`
	DefaultRoom   string `env:"CHAT_ROOM,default=general"`
	Username      string `env:"CHAT_USERNAME"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	transport := newWSTransport(config.ServerAddress)
	machine := client.NewStateMachine(transport, config.DefaultRoom)

	if err := machine.Join(config.Username); err != nil {
		return exitRuntime, err
	}
	color.Greenln("Connected as", machine.Username(), "in room", config.DefaultRoom)

	debouncer := client.NewDebouncer(client.NewClock(), client.DefaultTypingIdle,
		func() { _ = transport.Emit(ws.EventTypingStart, config.DefaultRoom) },
		func() { _ = transport.Emit(ws.EventTypingStop, config.DefaultRoom) },
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		transport.readLoop(config.DefaultRoom)
		machine.OnTransportLost()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		_ = machine.Leave()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for machine.State() == client.Joined && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			_ = machine.Leave()
			break
		}
		debouncer.Keystroke()
		if err := machine.Send(line); err != nil {
			break
		}
		// Sending the message counts as the end of the typing burst.
		debouncer.Flush()
	}

	_ = machine.Leave()
	<-done
	return exitOK, nil
}

// wsTransport is the gorilla/websocket implementation of client.Transport.
type wsTransport struct {
	addr string
	conn *websocket.Conn
}

func newWSTransport(addr string) *wsTransport {
	return &wsTransport{addr: addr}
}

func (t *wsTransport) Dial(username string) error {
	u := url.URL{
		Scheme:   "ws",
		Host:     t.addr,
		Path:     "/ws",
		RawQuery: "username=" + url.QueryEscape(username),
	}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return err
	}
	t.conn = conn
	return nil
}

func (t *wsTransport) Emit(event string, payload any) error {
	frame, err := ws.EncodeFrame(event, payload)
	if err != nil {
		return err
	}
	return t.conn.WriteMessage(websocket.TextMessage, frame)
}

func (t *wsTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

// readLoop prints incoming events until the connection drops.
func (t *wsTransport) readLoop(room string) {
	for {
		_, raw, err := t.conn.ReadMessage()
		if err != nil {
			return
		}
		frame, err := ws.DecodeFrame(raw)
		if err != nil {
			continue
		}
		printFrame(frame, room)
	}
}

func printFrame(frame ws.Frame, room string) {
	switch frame.Event {
	case ws.EventReceiveMessage:
		var p ws.ReceiveMessagePayload
		if json.Unmarshal(frame.Data, &p) == nil {
			color.Cyan.Printf("%s ", p.User.Username)
			fmt.Println(p.Content)
		}
	case ws.EventUserJoined, ws.EventUserLeft:
		var p ws.PresencePayload
		if json.Unmarshal(frame.Data, &p) == nil {
			color.Yellowln("*", p.Message)
		}
	case ws.EventUserTyping:
		var p ws.UserTypingPayload
		if json.Unmarshal(frame.Data, &p) == nil && p.IsTyping {
			color.Grayln(p.Username, "is typing in", room, "...")
		}
	case ws.EventError:
		var p ws.ErrorPayload
		if json.Unmarshal(frame.Data, &p) == nil {
			color.Redln("error:", p.Message)
		}
	}
}
