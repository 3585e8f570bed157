package gateway

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/soyeahso/switchboard/internal/domain"
)

// registerHTTPRoutes sets up all HTTP routes on the server mux.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	// Catch-all for unknown routes
	mux.HandleFunc("/", handleNotFound)
}

// registerRPCHandlers sets up all RPC method handlers. Surface-side methods
// manage views; engine-side methods feed generation events into the
// coordinator.
func (s *Server) registerRPCHandlers() {
	s.Handle("health", s.rpcHealth)
	s.Handle("view.register", s.rpcViewRegister)
	s.Handle("view.unregister", s.rpcViewUnregister)
	s.Handle("view.bind", s.rpcViewBind)
	s.Handle("session.state", s.rpcSessionState)
	s.Handle("session.clear", s.rpcSessionClear)
	s.Handle("sessions.streaming", s.rpcSessionsStreaming)
	s.Handle("engine.sendStart", s.rpcEngineSendStart)
	s.Handle("engine.chunk", s.rpcEngineChunk)
	s.Handle("engine.complete", s.rpcEngineComplete)
	s.Handle("engine.error", s.rpcEngineError)
}

func (s *Server) rpcHealth(rc *RequestContext) {
	uptime := int64(0)
	if !s.startedAt.IsZero() {
		uptime = int64(time.Since(s.startedAt).Seconds())
	}
	rc.Respond(HealthResponse{
		Status:        "ok",
		Version:       s.version,
		Clients:       s.clients.Count(),
		Streaming:     s.coord.AnyStreaming(),
		UptimeSeconds: uptime,
	})
}

type viewRegisterParams struct {
	ViewID string `json:"viewId,omitempty"`
}

func (s *Server) rpcViewRegister(rc *RequestContext) {
	var p viewRegisterParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.ViewID == "" {
		p.ViewID = uuid.New().String()
	}

	v := s.coord.RegisterView(p.ViewID)
	rc.Client.AddView(p.ViewID)
	rc.Respond(v)
}

type viewIDParams struct {
	ViewID string `json:"viewId"`
}

func (s *Server) rpcViewUnregister(rc *RequestContext) {
	var p viewIDParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.ViewID == "" {
		rc.RespondError("invalid_params", "viewId is required")
		return
	}

	s.coord.UnregisterView(p.ViewID)
	rc.Client.RemoveView(p.ViewID)
	rc.Respond(map[string]any{"viewId": p.ViewID, "unregistered": true})
}

type viewBindParams struct {
	ViewID         string `json:"viewId"`
	ConversationID int64  `json:"conversationId"`
	SessionID      string `json:"sessionId"`
}

func (s *Server) rpcViewBind(rc *RequestContext) {
	var p viewBindParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.ViewID == "" {
		rc.RespondError("invalid_params", "viewId is required")
		return
	}
	if p.SessionID == "" {
		rc.RespondError("invalid_params", "sessionId is required")
		return
	}

	key := domain.SessionKey{ConversationID: p.ConversationID, SessionID: p.SessionID}
	s.coord.BindView(p.ViewID, key)

	// Hand back the current state so the surface can render immediately
	// instead of waiting for the next notification.
	rc.Respond(map[string]any{
		"viewId": p.ViewID,
		"key":    key,
		"state":  s.coord.GetState(key),
	})
}

type sessionKeyParams struct {
	ConversationID int64  `json:"conversationId"`
	SessionID      string `json:"sessionId"`
}

func (p sessionKeyParams) key() domain.SessionKey {
	return domain.SessionKey{ConversationID: p.ConversationID, SessionID: p.SessionID}
}

func (s *Server) rpcSessionState(rc *RequestContext) {
	var p sessionKeyParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.SessionID == "" {
		rc.RespondError("invalid_params", "sessionId is required")
		return
	}

	rc.Respond(map[string]any{
		"key":   p.key(),
		"state": s.coord.GetState(p.key()),
	})
}

type sessionClearParams struct {
	ConversationID int64 `json:"conversationId"`
}

func (s *Server) rpcSessionClear(rc *RequestContext) {
	var p sessionClearParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}

	s.coord.ClearConversation(p.ConversationID)
	rc.Respond(map[string]any{"conversationId": p.ConversationID, "cleared": true})
}

func (s *Server) rpcSessionsStreaming(rc *RequestContext) {
	keys := s.coord.StreamingSessions()
	if keys == nil {
		keys = []domain.SessionKey{}
	}
	rc.Respond(map[string]any{"sessions": keys})
}

func (s *Server) rpcEngineSendStart(rc *RequestContext) {
	var p sessionKeyParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.SessionID == "" {
		rc.RespondError("invalid_params", "sessionId is required")
		return
	}

	s.coord.OnSendStart(p.key())
	rc.Respond(map[string]any{"accepted": true})
}

type engineChunkParams struct {
	sessionKeyParams
	Content string `json:"content"`
}

func (s *Server) rpcEngineChunk(rc *RequestContext) {
	var p engineChunkParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.SessionID == "" {
		rc.RespondError("invalid_params", "sessionId is required")
		return
	}

	s.coord.OnStreamChunk(p.key(), p.Content)
	rc.Respond(map[string]any{"accepted": true})
}

func (s *Server) rpcEngineComplete(rc *RequestContext) {
	var p sessionKeyParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.SessionID == "" {
		rc.RespondError("invalid_params", "sessionId is required")
		return
	}

	s.coord.OnComplete(p.key())
	rc.Respond(map[string]any{"accepted": true})
}

type engineErrorParams struct {
	sessionKeyParams
	Message string `json:"message"`
}

func (s *Server) rpcEngineError(rc *RequestContext) {
	var p engineErrorParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.SessionID == "" {
		rc.RespondError("invalid_params", "sessionId is required")
		return
	}
	if p.Message == "" {
		rc.RespondError("invalid_params", "message is required")
		return
	}

	s.coord.OnError(p.key(), p.Message)
	rc.Respond(map[string]any{"accepted": true})
}
