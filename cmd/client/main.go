package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/reversi/internal/domain"
	"github.com/kiryu-dev/reversi/pkg/utils"
	"github.com/pkg/errors"
)

var errBadInput = errors.New("expected two numbers: x y")

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	flag.Parse()
	clientUuid := uuid.NewString()
	host := *addr
	for {
		master, err := play(host, clientUuid)
		if err != nil {
			log.Fatal(err)
		}
		if master == "" {
			return
		}
		_, port, err := net.SplitHostPort(host)
		if err != nil {
			log.Fatal(err)
		}
		host = net.JoinHostPort(master, port)
	}
}

// play returns the name of the master server when the server asks to switch.
func play(host string, clientUuid string) (string, error) {
	u := url.URL{Scheme: "ws", Host: host, Path: "/game"}
	header := http.Header{domain.ClientUuidHeader: {clientUuid}}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		return "", errors.WithMessage(err, "dial")
	}
	defer func() {
		_ = conn.Close()
	}()
	return newClient(conn, os.Stdin).handleActions()
}

type client struct {
	conn    *websocket.Conn
	scanner *bufio.Scanner
	board   domain.Board
	color   domain.Cell
}

func newClient(conn *websocket.Conn, input io.Reader) *client {
	return &client{
		conn:    conn,
		scanner: bufio.NewScanner(input),
	}
}

func (c *client) handleActions() (string, error) {
	for {
		msg := new(domain.Message)
		if err := c.conn.ReadJSON(msg); err != nil {
			return "", errors.WithMessage(err, "read json msg")
		}
		switch msg.Type {
		case domain.StartGame:
			if err := c.handleStartGameAction(msg); err != nil {
				return "", errors.WithMessage(err, "handle start game action")
			}
		case domain.RequestMove:
			if err := c.handleRequestMoveAction(msg); err != nil {
				return "", errors.WithMessage(err, "handle request move action")
			}
		case domain.InvalidMove:
			v, err := utils.DecodePayload[domain.InvalidMovePayload](msg.Payload)
			if err != nil {
				return "", errors.WithMessage(err, "unmarshal json to 'InvalidMovePayload' type")
			}
			fmt.Println("Недопустимый ход: " + v.Reason)
		case domain.PlayerMove:
			isGameFinished, err := c.handlePlayerMoveAction(msg)
			if err != nil {
				return "", errors.WithMessage(err, "handle player move action")
			}
			if isGameFinished {
				return "", nil
			}
		case domain.Pass:
			v, err := utils.DecodePayload[domain.PassPayload](msg.Payload)
			if err != nil {
				return "", errors.WithMessage(err, "unmarshal json to 'PassPayload' type")
			}
			fmt.Printf("Пас (%s)\n", v.Color)
			if v.GameResult != nil {
				fmt.Println(*v.GameResult)
				return "", nil
			}
		case domain.Walkover:
			v, err := utils.DecodePayload[domain.WalkoverPayload](msg.Payload)
			if err != nil {
				return "", errors.WithMessage(err, "unmarshal json to 'WalkoverPayload' type")
			}
			fmt.Println(v.GameResult)
			return "", nil
		case domain.SwitchServer:
			v, err := utils.DecodePayload[domain.SwitchServerPayload](msg.Payload)
			if err != nil {
				return "", errors.WithMessage(err, "unmarshal json to 'SwitchServerPayload' type")
			}
			return v.MasterServer, nil
		}
	}
}

func (c *client) handleStartGameAction(msg *domain.Message) error {
	v, err := utils.DecodePayload[domain.StartGamePayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'StartGamePayload' type")
	}
	c.color = v.Color
	c.board = v.Board
	c.printBoard()
	return nil
}

func (c *client) handleRequestMoveAction(msg *domain.Message) error {
	v, err := utils.DecodePayload[domain.RequestMovePayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'RequestMovePayload' type")
	}
	hints := make([]string, 0, len(v.LegalMoves))
	for _, pos := range v.LegalMoves {
		hints = append(hints, fmt.Sprintf("%d %d", pos.X, pos.Y))
	}
	fmt.Println("Возможные ходы: " + strings.Join(hints, ", "))
	pos, err := c.readMove()
	if err != nil {
		return errors.WithMessage(err, "read move")
	}
	err = c.conn.WriteJSON(domain.Message{
		Type: domain.PlayerMove,
		Payload: domain.PlayerMovePayload{
			Color:    c.color,
			Position: pos,
		},
	})
	if err != nil {
		return errors.WithMessage(err, "write json msg")
	}
	return nil
}

func (c *client) handlePlayerMoveAction(msg *domain.Message) (isGameFinished bool, err error) {
	v, err := utils.DecodePayload[domain.PlayerMovePayload](msg.Payload)
	if err != nil {
		return false, errors.WithMessage(err, "unmarshal json to 'PlayerMovePayload' type")
	}
	c.board = v.Board
	c.printBoard()
	fmt.Printf("Ход %s: %s\n", v.Color, v.Position)
	if v.GameResult != nil {
		fmt.Println(*v.GameResult)
		return true, nil
	}
	return false, nil
}

// readMove prompts until a cell on the board is entered. It fails only when
// stdin can no longer be read.
func (c *client) readMove() (domain.Position, error) {
	for {
		fmt.Printf("Твой ход (x y): ")
		pos, err := c.selectCell()
		switch {
		case err == nil:
			return pos, nil
		case errors.Is(err, errBadInput), errors.Is(err, domain.ErrInvalidPosition):
			fmt.Print("\033[F\033[K")
		default:
			return domain.Position{}, err
		}
	}
}

func (c *client) selectCell() (domain.Position, error) {
	if ok := c.scanner.Scan(); !ok {
		if err := c.scanner.Err(); err != nil {
			return domain.Position{}, errors.WithMessage(err, "scan stdin")
		}
		return domain.Position{}, io.EOF
	}
	fields := strings.Fields(c.scanner.Text())
	if len(fields) != 2 {
		return domain.Position{}, errBadInput
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Position{}, errors.WithMessage(errBadInput, err.Error())
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return domain.Position{}, errors.WithMessage(errBadInput, err.Error())
	}
	if !domain.Validate(x, y) {
		return domain.Position{}, errors.WithMessagef(domain.ErrInvalidPosition, "x: %d, y: %d", x, y)
	}
	return domain.Position{X: x, Y: y}, nil
}

func (c *client) printBoard() {
	fmt.Printf("\033[H\033[J")
	fmt.Println(c.board)
	board := c.board
	fmt.Printf("%c %d  %c %d  (вы: %c)\n",
		domain.Black.Rune(), board.Count(domain.Black),
		domain.White.Rune(), board.Count(domain.White),
		c.color.Rune())
}
