package service

import (
	"context"
	"encoding/json"
	"time"

	"pitchside/internal/dto"
	"pitchside/internal/extract"
	"pitchside/internal/models"
	"pitchside/internal/repository"
	"pitchside/internal/retrieval"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatService runs the conversation pipeline: extract preferences from the
// message, merge them into the profile, retrieve relevant knowledge, ask the
// LLM, and persist both sides of the exchange.
type ChatService struct {
	chatRepo       *repository.ChatRepository
	knowledgeRepo  *repository.KnowledgeRepository
	profileService *ProfileService
	llmService     *LLMService
	extractor      *extract.Extractor
	collection     *retrieval.Collection
	topK           int
	logger         *zap.Logger
}

func NewChatService(
	chatRepo *repository.ChatRepository,
	knowledgeRepo *repository.KnowledgeRepository,
	profileService *ProfileService,
	llmService *LLMService,
	extractor *extract.Extractor,
	collection *retrieval.Collection,
	topK int,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chatRepo:       chatRepo,
		knowledgeRepo:  knowledgeRepo,
		profileService: profileService,
		llmService:     llmService,
		extractor:      extractor,
		collection:     collection,
		topK:           topK,
		logger:         logger,
	}
}

type messageMetadata struct {
	QueryCategory string   `json:"query_category,omitempty"`
	SourceIDs     []string `json:"source_ids,omitempty"`
	Fallback      bool     `json:"fallback,omitempty"`
}

func (s *ChatService) HandleMessage(ctx context.Context, userID uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	session, err := s.resolveSession(ctx, userID, req.SessionID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := s.extractor.Extract(req.Message)
	profile, err = s.profileService.Merge(ctx, profile, result)
	if err != nil {
		// A failed profile write must not kill the conversation.
		s.logger.Warn("profile merge failed", zap.Error(err), zap.String("user_id", userID.String()))
	}

	category := CategorizeQuery(req.Message)

	results := s.collection.Query(ctx, req.Message, s.topK, &retrieval.QueryProfile{
		FavoriteTeams:   profile.FavoriteTeams,
		FavoriteLeagues: profile.FavoriteLeagues,
	})

	systemPrompt := BuildSystemPrompt(profile, category, results)

	reply, err := s.llmService.Complete(ctx, systemPrompt, req.Message)
	fallback := false
	if err != nil {
		s.logger.Error("llm completion failed", zap.Error(err))
		reply = fallbackResponse
		fallback = true
	}

	sourceIDs := make([]string, 0, len(results))
	sources := make([]dto.SourceResponse, 0, len(results))
	for _, r := range results {
		sourceIDs = append(sourceIDs, r.Document.ID)
		sources = append(sources, dto.SourceResponse{
			DocumentID: r.Document.ID,
			Title:      r.Document.Title,
			Category:   string(r.Document.Category),
			Score:      r.Score,
		})
	}

	s.storeExchange(ctx, session.ID, req.Message, reply, messageMetadata{
		QueryCategory: category,
		SourceIDs:     sourceIDs,
		Fallback:      fallback,
	})

	// Counter persistence is best effort and never blocks the response.
	if len(sourceIDs) > 0 {
		go func(ids []string) {
			touchCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.knowledgeRepo.TouchDocuments(touchCtx, ids)
		}(sourceIDs)
	}

	return &dto.ChatResponse{
		SessionID:     session.ID.String(),
		Reply:         reply,
		QueryCategory: category,
		Sources:       sources,
	}, nil
}

// History returns the messages of one of the caller's sessions.
func (s *ChatService) History(ctx context.Context, userID, sessionID uuid.UUID) (*dto.ChatHistoryResponse, error) {
	session, err := s.chatRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, repository.ErrSessionNotFound
	}

	messages, err := s.chatRepo.ListMessages(ctx, sessionID, 0)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChatHistoryResponse{
		SessionID: sessionID.String(),
		Messages:  make([]dto.ChatMessageResponse, 0, len(messages)),
	}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, dto.ChatMessageResponse{
			ID:        msg.ID.String(),
			Sender:    string(msg.Sender),
			Message:   msg.Message,
			CreatedAt: msg.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp, nil
}

func (s *ChatService) resolveSession(ctx context.Context, userID uuid.UUID, sessionID string) (*models.ChatSession, error) {
	if sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			return nil, repository.ErrSessionNotFound
		}
		session, err := s.chatRepo.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		if session.UserID != userID {
			return nil, repository.ErrSessionNotFound
		}
		return session, nil
	}

	session := &models.ChatSession{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) storeExchange(ctx context.Context, sessionID uuid.UUID, userMessage, botReply string, meta messageMetadata) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		metaJSON = []byte("{}")
	}

	now := time.Now()
	userMsg := &models.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Sender:    models.SenderUser,
		Message:   userMessage,
		Metadata:  "{}",
		CreatedAt: now,
	}
	botMsg := &models.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Sender:    models.SenderBot,
		Message:   botReply,
		Metadata:  string(metaJSON),
		CreatedAt: now.Add(time.Millisecond),
	}

	if err := s.chatRepo.AddMessage(ctx, userMsg); err != nil {
		s.logger.Error("store user message", zap.Error(err))
	}
	if err := s.chatRepo.AddMessage(ctx, botMsg); err != nil {
		s.logger.Error("store bot message", zap.Error(err))
	}
}
