package service

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/dbarkol/telco-ai-solution-labs/types"
	"github.com/gorilla/websocket"
)

// WebSocketService answers questions over a websocket, streaming the generated
// answer as it arrives and finishing with the full structured response.
type WebSocketService struct {
	rag      *RAGService
	upgrader websocket.Upgrader
}

func NewWebSocketService(rag *RAGService) *WebSocketService {
	return &WebSocketService{
		rag: rag,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // adjust for production
			},
		},
	}
}

func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "Invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketPong})

		case types.TypeWebsocketAsk:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "Invalid message")
				continue
			}
			var payload types.WebsocketAskPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil || payload.Question == "" {
				s.writeError(conn, "Invalid question")
				continue
			}
			s.answer(conn, r, payload.Question)

		default:
			log.Println("Invalid message type:", req.Type)
		}
	}
}

func (s *WebSocketService) answer(conn *websocket.Conn, r *http.Request, question string) {
	conn.WriteJSON(types.WebsocketResponse{
		Type:    types.TypeWebsocketProcessing,
		Payload: map[string]string{"message": "Searching the manual"},
	})

	// The read loop and this handler share one goroutine, so writes from the
	// stream callback never interleave.
	resp, err := s.rag.QueryStream(r.Context(), question, func(delta string) {
		conn.WriteJSON(types.WebsocketResponse{
			Type:    types.TypeWebsocketDelta,
			Payload: types.WebsocketDeltaPayload{Delta: delta},
		})
	})
	if err != nil {
		log.Println("Query error:", err)
		s.writeError(conn, "Sorry, I couldn't generate an answer right now. Please try again.")
		return
	}

	if err := conn.WriteJSON(types.WebsocketResponse{
		Type:    types.TypeWebsocketAnswer,
		Payload: resp,
	}); err != nil {
		log.Println("Write error:", err)
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: map[string]string{"message": message},
	}); err != nil {
		log.Println("Write error:", err)
	}
}
