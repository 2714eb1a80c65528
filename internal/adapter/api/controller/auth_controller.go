package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/assistant-juridique/internal/adapter/api/dto"
	"github.com/hugohenrick/assistant-juridique/internal/domain/user"
	"github.com/hugohenrick/assistant-juridique/pkg/auth"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
)

// Mensagens exibidas ao cliente
const (
	msgInvalidData        = "Données invalides"
	msgDuplicateEmail     = "Un compte avec cet email existe déjà"
	msgInvalidCredentials = "Email ou mot de passe incorrect"
	msgInternalError      = "Erreur interne du serveur"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	userRepository user.Repository
	jwtService     *auth.JWTService
	cookieSecure   bool
	logger         logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepository user.Repository, jwtService *auth.JWTService, cookieSecure bool, log logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		jwtService:     jwtService,
		cookieSecure:   cookieSecure,
		logger:         log,
	}
}

// Signup cadastra um novo cliente
// @Summary Cadastra um cliente
// @Description Cria a conta de um cliente; a senha é gravada com bcrypt
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Dados do cliente"
// @Success 200 {object} dto.SignupResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var request dto.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(msgInvalidData, err.Error()))
		return
	}

	u := &user.User{
		ID:        uuid.NewString(),
		Civilite:  strings.TrimSpace(request.Civilite),
		Nom:       strings.TrimSpace(request.Nom),
		Prenom:    strings.TrimSpace(request.Prenom),
		Telephone: strings.TrimSpace(request.Telephone),
		Email:     user.NormalizeEmail(request.Email),
	}
	if u.Civilite == "" || u.Nom == "" || u.Prenom == "" || u.Telephone == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(msgInvalidData, "civilite, nom, prenom et telephone sont obligatoires"))
		return
	}

	exists, err := c.userRepository.ExistsByEmail(ctx, u.Email)
	if err != nil {
		c.logger.Error("erro ao verificar email", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(msgInternalError, nil))
		return
	}
	if exists {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(msgDuplicateEmail, nil))
		return
	}

	if err := u.SetPassword(request.Password); err != nil {
		c.logger.Error("erro ao gerar hash da senha", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(msgInternalError, nil))
		return
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := c.userRepository.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(msgDuplicateEmail, nil))
			return
		}
		c.logger.Error("erro ao criar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(msgInternalError, nil))
		return
	}

	c.logger.Info("cliente cadastrado", "user_id", u.ID)
	ctx.JSON(http.StatusOK, dto.SignupResponse{
		Message: "Compte créé avec succès",
		User:    dto.ToUserResponse(u),
	})
}

// Signin autentica um cliente e abre a sessão
// @Summary Autentica um cliente
// @Description Verifica as credenciais e retorna o token da sessão (também enviado no cookie session_token)
// @Tags auth
// @Accept json
// @Produce json
// @Param signin body dto.SigninRequest true "Credenciais"
// @Success 200 {object} dto.SigninResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/signin [post]
func (c *AuthController) Signin(ctx *gin.Context) {
	var request dto.SigninRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(msgInvalidData, err.Error()))
		return
	}

	u, err := c.userRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msgInvalidCredentials, nil))
			return
		}
		c.logger.Error("erro ao buscar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(msgInternalError, nil))
		return
	}

	if !u.CheckPassword(request.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msgInvalidCredentials, nil))
		return
	}

	token, expiresAt, err := c.jwtService.GenerateToken(u)
	if err != nil {
		c.logger.Error("erro ao gerar token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(msgInternalError, nil))
		return
	}

	auth.SetSessionCookie(ctx, token, int(c.jwtService.Expiration().Seconds()), c.cookieSecure)

	ctx.JSON(http.StatusOK, dto.SigninResponse{
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Admin:       c.jwtService.IsAdmin(u.Email),
	})
}

// Signout encerra a sessão
// @Summary Encerra a sessão
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/signout [post]
func (c *AuthController) Signout(ctx *gin.Context) {
	auth.ClearSessionCookie(ctx, c.cookieSecure)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Déconnexion réussie"})
}

// Me retorna o cliente conectado
// @Summary Retorna o cliente conectado
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	session := auth.SessionFrom(ctx)

	u, err := c.userRepository.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Session invalide", nil))
			return
		}
		c.logger.Error("erro ao buscar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(msgInternalError, nil))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}
