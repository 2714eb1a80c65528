package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/dto"
	"github.com/hugohenrick/assistant-juridique/pkg/apperror"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
)

// respondError converte um erro de aplicação na resposta JSON {error}
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	status := apperror.HTTPStatus(err)
	if status >= 500 {
		log.Error("erro ao processar requisição", "path", ctx.FullPath(), "code", string(apperror.CodeOf(err)), "error", err)
	}
	_ = ctx.Error(err)
	ctx.JSON(status, dto.NewErrorResponse(apperror.PublicMessage(err), nil))
}
