package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeet-integrated/elvproposal/internal/consultant"
	"github.com/jeet-integrated/elvproposal/internal/llm"
	"github.com/jeet-integrated/elvproposal/internal/navigator"
	"github.com/jeet-integrated/elvproposal/internal/proposal"
)

type stubText struct {
	content string
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stubText) Name() string { return "stub" }

func (s *stubText) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.started != nil {
		s.once.Do(func() { close(s.started) })
	}
	if s.release != nil {
		<-s.release
	}
	return &llm.CompletionResponse{Content: s.content}, nil
}

type stubImage struct {
	images []llm.Image
}

func (s *stubImage) Name() string { return "stub" }

func (s *stubImage) GenerateImage(context.Context, llm.ImageRequest) (*llm.ImageResponse, error) {
	return &llm.ImageResponse{Images: s.images}, nil
}

func setupTest(t *testing.T, text llm.TextProvider, img llm.ImageProvider) (*httptest.Server, *consultant.Registry) {
	t.Helper()

	doc := proposal.Default()
	reg := consultant.NewRegistry(consultant.RegistryOptions{
		Text:     text,
		Image:    img,
		Context:  func() string { return proposal.Serialize(doc) },
		Sections: doc.SectionIDs(),
		Greeting: consultant.DefaultGreeting,
	})
	d, err := New(doc, reg, nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	d.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, reg
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUntil(t *testing.T, conn *websocket.Conn, typ string) chatResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var resp chatResponse
		require.NoError(t, conn.ReadJSON(&resp))
		if resp.Type == typ {
			return resp
		}
	}
}

func TestIndexRendersSections(t *testing.T) {
	srv, _ := setupTest(t, &stubText{}, &stubImage{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	d, err := New(proposal.Default(), consultant.NewRegistry(consultant.RegistryOptions{}), nil)
	require.NoError(t, err)
	page := string(d.index)
	for _, id := range proposal.Default().SectionIDs() {
		assert.Contains(t, page, `<section id="`+id+`">`)
	}
	assert.Contains(t, page, proposal.EmptyStateMessage)
}

func TestStatsEndpoint(t *testing.T) {
	srv, reg := setupTest(t, &stubText{}, &stubImage{})
	reg.Create()

	resp, err := http.Get(srv.URL + "/api/dashboard/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats statsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, len(proposal.Default().BOQ), stats.BOQItems)
	assert.Equal(t, 8, stats.Sections)
	assert.Equal(t, 1, stats.ActiveSessions)
}

func TestWebSocketSessionGreeting(t *testing.T) {
	srv, reg := setupTest(t, &stubText{}, &stubImage{})
	conn := dial(t, srv, "")

	sess := readUntil(t, conn, typeSession)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, "cover", sess.Section)
	require.Len(t, sess.History, 1)
	assert.Equal(t, consultant.DefaultGreeting, sess.History[0].Content)
	assert.Contains(t, sess.History[0].HTML, "<p>")
	assert.Equal(t, 1, reg.Len())
}

func TestWebSocketUnknownSession(t *testing.T) {
	srv, _ := setupTest(t, &stubText{}, &stubImage{})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session=missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocketAsk(t *testing.T) {
	srv, _ := setupTest(t, &stubText{content: "Retention is **31 days**."}, &stubImage{})
	conn := dial(t, srv, "")
	readUntil(t, conn, typeSession)

	require.NoError(t, conn.WriteJSON(chatRequest{Type: typeAsk, Content: "Retention?"}))

	user := readUntil(t, conn, typeMessage)
	require.NotNil(t, user.Message)
	assert.Equal(t, consultant.RoleUser, user.Message.Role)
	assert.Equal(t, "Retention?", user.Message.Content)

	answer := readUntil(t, conn, typeMessage)
	require.NotNil(t, answer.Message)
	assert.Equal(t, consultant.RoleAssistant, answer.Message.Role)
	assert.Contains(t, answer.Message.HTML, "<strong>31 days</strong>")
}

func TestWebSocketAskWhileBusy(t *testing.T) {
	text := &stubText{content: "done", started: make(chan struct{}), release: make(chan struct{})}
	srv, _ := setupTest(t, text, &stubImage{})
	conn := dial(t, srv, "")
	readUntil(t, conn, typeSession)

	require.NoError(t, conn.WriteJSON(chatRequest{Type: typeAsk, Content: "first"}))
	readUntil(t, conn, typeMessage)
	<-text.started

	require.NoError(t, conn.WriteJSON(chatRequest{Type: typeAsk, Content: "second"}))
	busy := readUntil(t, conn, typeBusy)
	assert.NotEmpty(t, busy.Content)

	close(text.release)
	answer := readUntil(t, conn, typeMessage)
	assert.Equal(t, "done", answer.Message.Content)
}

func TestWebSocketDiagram(t *testing.T) {
	png := llm.Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
	srv, _ := setupTest(t, &stubText{}, &stubImage{images: []llm.Image{png}})
	conn := dial(t, srv, "")
	readUntil(t, conn, typeSession)

	require.NoError(t, conn.WriteJSON(chatRequest{Type: typeDiagram, Content: "riser"}))
	resp := readUntil(t, conn, typeImage)
	require.NotNil(t, resp.Image)
	assert.Equal(t, png, *resp.Image)
}

func TestWebSocketDiagramWithoutImage(t *testing.T) {
	srv, _ := setupTest(t, &stubText{}, &stubImage{})
	conn := dial(t, srv, "")
	readUntil(t, conn, typeSession)

	require.NoError(t, conn.WriteJSON(chatRequest{Type: typeDiagram, Content: "riser"}))
	resp := readUntil(t, conn, typeImage)
	assert.Nil(t, resp.Image)
}

func TestWebSocketScrollAndNavigate(t *testing.T) {
	srv, _ := setupTest(t, &stubText{}, &stubImage{})
	conn := dial(t, srv, "")
	readUntil(t, conn, typeSession)

	require.NoError(t, conn.WriteJSON(chatRequest{Type: typeScroll, Boxes: map[string]navigator.Box{
		"cover":    {Top: -900, Bottom: -10},
		"overview": {Top: -10, Bottom: 600},
	}}))
	active := readUntil(t, conn, typeActiveSection)
	assert.Equal(t, "overview", active.Section)

	require.NoError(t, conn.WriteJSON(chatRequest{Type: typeNavigate, Section: "boq"}))
	scroll := readUntil(t, conn, typeScrollTo)
	require.NotNil(t, scroll.Scroll)
	assert.Equal(t, "boq", scroll.Scroll.Section)
	assert.Equal(t, "smooth", scroll.Scroll.Behavior)
}

func TestWebSocketResumeSession(t *testing.T) {
	srv, reg := setupTest(t, &stubText{}, &stubImage{})
	sess := reg.Create()
	sess.Conversation.AppendMessage(consultant.ChatMessage{Role: consultant.RoleUser, Content: "earlier"})

	conn := dial(t, srv, "?session="+sess.ID)
	resp := readUntil(t, conn, typeSession)
	assert.Equal(t, sess.ID, resp.SessionID)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "earlier", resp.History[1].Content)
}

func TestWebSocketRejectsUnknownType(t *testing.T) {
	srv, _ := setupTest(t, &stubText{}, &stubImage{})
	conn := dial(t, srv, "")
	readUntil(t, conn, typeSession)

	require.NoError(t, conn.WriteJSON(chatRequest{Type: "dance"}))
	resp := readUntil(t, conn, typeError)
	assert.Contains(t, resp.Content, "dance")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	resp = readUntil(t, conn, typeError)
	assert.Equal(t, "invalid message format", resp.Content)
}

func TestWebSocketNavigateSurvivesSecondTabClosing(t *testing.T) {
	srv, reg := setupTest(t, &stubText{}, &stubImage{})
	first := dial(t, srv, "")
	sess := readUntil(t, first, typeSession)

	second := dial(t, srv, "?session="+sess.SessionID)
	readUntil(t, second, typeSession)

	require.NoError(t, second.WriteJSON(chatRequest{Type: typeNavigate, Section: "issues"}))
	assert.Equal(t, "issues", readUntil(t, first, typeScrollTo).Section, "both tabs follow navigation")
	assert.Equal(t, "issues", readUntil(t, second, typeScrollTo).Section)
	require.NoError(t, second.Close())
	require.Eventually(t, func() bool { return reg.Holders(sess.SessionID) == 1 }, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, first.WriteJSON(chatRequest{Type: typeNavigate, Section: "boq"}))
	assert.Equal(t, "boq", readUntil(t, first, typeScrollTo).Section)
}

func TestWebSocketUnusedSessionsAreDropped(t *testing.T) {
	srv, reg := setupTest(t, &stubText{}, &stubImage{})

	for i := 0; i < 5; i++ {
		conn := dial(t, srv, "")
		readUntil(t, conn, typeSession)
		require.NoError(t, conn.Close())
	}

	assert.Eventually(t, func() bool { return reg.Len() == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestWebSocketUsedSessionIsKeptForResume(t *testing.T) {
	srv, reg := setupTest(t, &stubText{content: "ok"}, &stubImage{})
	conn := dial(t, srv, "")
	sess := readUntil(t, conn, typeSession)

	require.NoError(t, conn.WriteJSON(chatRequest{Type: typeAsk, Content: "Retention?"}))
	readUntil(t, conn, typeMessage)
	readUntil(t, conn, typeMessage)
	require.NoError(t, conn.Close())

	again := dial(t, srv, "?session="+sess.SessionID)
	resp := readUntil(t, again, typeSession)
	assert.Len(t, resp.History, 3)
	assert.Equal(t, 1, reg.Len())
}
