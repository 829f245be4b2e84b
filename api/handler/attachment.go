package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/doneo/backend/api/transport"
	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/pkg/httpcontext"
	mediaUC "github.com/doneo/backend/usecase/media"
)

type AttachmentHandler struct {
	baseHandler
	uc *mediaUC.UseCase
}

func NewAttachmentHandler(uc *mediaUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Media browser listing
// @Tags attachments
// @Router /api/v1/projects/{id}/attachments [get]
func (h *AttachmentHandler) MediaList(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sections, err := h.uc.MediaList(stdCtx, pathValue(ctx, "id"), string(ctx.QueryArgs().Peek("type")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewMediaSectionViews(sections))
}

// @Summary Register attachments
// @Tags attachments
// @Router /api/v1/projects/{id}/attachments [post]
func (h *AttachmentHandler) AddAttachments(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.AddAttachmentsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || len(req.Items) == 0 {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	items := make([]mediaUC.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, mediaUC.Item{
			Type:      domain.AttachmentType(item.Type),
			FileName:  item.FileName,
			FileSize:  item.FileSize,
			ImageData: item.ImageData,
		})
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.AddAttachments(stdCtx, userID, pathValue(ctx, "id"), items,
		mediaUC.Link{TaskID: req.TaskID, SubtaskID: req.SubtaskID}, req.Caption)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	views := make([]transport.AttachmentView, 0, len(created))
	for _, a := range created {
		views = append(views, transport.NewAttachmentView(a))
	}
	h.respondSuccess(ctx, http.StatusCreated, views)
}
