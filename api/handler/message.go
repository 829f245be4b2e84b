package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/doneo/backend/api/transport"
	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/pkg/httpcontext"
	chatUC "github.com/doneo/backend/usecase/chat"
)

type MessageHandler struct {
	baseHandler
	uc *chatUC.UseCase
}

func NewMessageHandler(uc *chatUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Feed page with render metadata
// @Tags messages
// @Router /api/v1/projects/{id}/messages [get]
func (h *MessageHandler) ListMessages(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 50)
	before, _ := strconv.ParseInt(string(ctx.QueryArgs().Peek("before")), 10, 64)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.uc.ListMessages(stdCtx, pathValue(ctx, "id"), limit, before)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	meta := transport.PageMeta{Count: len(items)}
	if len(items) == limit {
		meta.NextBefore = items[0].Message.Seq
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(items, meta))
}

// @Summary Send message
// @Tags messages
// @Router /api/v1/projects/{id}/messages [post]
func (h *MessageHandler) SendMessage(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.SendMessageRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.TaskID != "" && req.SubtaskID != "" {
		h.respondInvalid(ctx, "a message may reference a task or a subtask, not both")
		return
	}

	var ref domain.ContextRef
	switch {
	case req.SubtaskID != "":
		ref = domain.SubtaskRef(req.TaskID, req.SubtaskID, "")
	case req.TaskID != "":
		ref = domain.TaskRef(req.TaskID, "")
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.SendMessage(stdCtx, userID, pathValue(ctx, "id"), req.Content, ref, req.QuotedID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, message)
}

// @Summary Send image message
// @Tags messages
// @Router /api/v1/projects/{id}/messages/image [post]
func (h *MessageHandler) SendImageMessage(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ImageMessageRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || len(req.ImageData) == 0 {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.SendImageMessage(stdCtx, userID, pathValue(ctx, "id"), req.ImageData, req.FileName)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, message)
}

// @Summary Toggle a reaction
// @Tags messages
// @Router /api/v1/messages/{id}/reactions [post]
func (h *MessageHandler) ToggleReaction(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ReactionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Emoji == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reacted, err := h.uc.ToggleReaction(stdCtx, userID, pathValue(ctx, "id"), req.Emoji)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"emoji":   req.Emoji,
		"reacted": reacted,
	})
}
