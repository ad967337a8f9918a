package auth

import (
	// 外部依赖
	"context"
	"encoding/json"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	oauth2 "golang.org/x/oauth2"

	// 内部引用
	config "github.com/labsuite/chemmanager/internal/config"
	common "github.com/labsuite/chemmanager/pkg/common"
	code "github.com/labsuite/chemmanager/pkg/common/code"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	utils "github.com/labsuite/chemmanager/pkg/utils"
)

type AuthType string

const (
	AuthTypeBearer AuthType = "Bearer"
	AuthTypeToken  AuthType = "Token"
)

type AuthFunc func(ctx *gin.Context, authHeader string) *model.UserData

type jwtClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userInfoResp struct {
	Status string          `json:"status"`
	Data   *model.UserData `json:"data"`
}

// ValidateToken 检查令牌是否有效
func ValidateToken(ctx context.Context, tokenType string, token string) (*model.UserData, error) {
	oauthConfig := GetOAuthConfig()
	oauthToken := &oauth2.Token{
		AccessToken: token,
		TokenType:   tokenType,
	}

	client := oauthConfig.Client(ctx, oauthToken)

	resp, err := client.Get(config.Global().OAuth2.UserInfoURL)
	if err != nil {
		logger.Errorf(ctx, "Failed to get user info: %v", err)
		return nil, code.InvalidToken
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Errorf(ctx, "Invalid token, status code: %d", resp.StatusCode)
		return nil, code.InvalidToken
	}

	result := &userInfoResp{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil ||
		result.Status != "ok" ||
		result.Data == nil {
		logger.Errorf(ctx, "Failed to parse user info: %v", err)
		return nil, code.InvalidToken
	}

	return result.Data, nil
}

func AuthWeb() func(ctx *gin.Context) {
	authFuncMap := map[AuthType]AuthFunc{
		AuthTypeBearer: getBearerUser,
		AuthTypeToken:  getOAuthUser,
	}

	return Auth(authFuncMap)
}

// Auth 中间件函数验证用户是否已登录
func Auth(authFuncMap map[AuthType]AuthFunc) func(ctx *gin.Context) {
	return func(ctx *gin.Context) {
		cookie, _ := ctx.Cookie("access_token")
		authHeader := ctx.GetHeader("Authorization")
		queryToken := ctx.Query("access_token")
		authHeader = utils.Or(cookie, queryToken, authHeader)
		if authHeader == "" {
			ctx.JSON(http.StatusUnauthorized, &common.Resp{
				Code: code.UnLogin,
				Error: &common.Error{
					Msg: code.UnLogin.String(),
				},
			})
			ctx.Abort()
			return
		}

		tokens := strings.Split(authHeader, " ")
		if len(tokens) != 2 {
			ctx.JSON(http.StatusUnauthorized,
				&common.Resp{
					Code: code.LoginFormatErr,
					Error: &common.Error{
						Msg: code.LoginFormatErr.String(),
					},
				})
			ctx.Abort()
			return
		}

		var userInfo *model.UserData

		f, ok := authFuncMap[AuthType(tokens[0])]
		if ok {
			userInfo = f(ctx, tokens[1])
		}

		if userInfo == nil {
			ctx.JSON(http.StatusUnauthorized,
				&common.Resp{
					Code: code.InvalidToken,
					Error: &common.Error{
						Msg: code.InvalidToken.String(),
					},
				})
			ctx.Abort()
			return
		}

		ctx.Set(USERKEY, userInfo)
		ctx.Next()
	}
}

func getBearerUser(ctx *gin.Context, authHeader string) *model.UserData {
	pubPEM := config.Global().Auth.JWTPublicKey
	if pubPEM == "" {
		logger.Errorf(ctx, "getBearerUser jwt public key not configured")
		return nil
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pubPEM))
	if err != nil {
		logger.Errorf(ctx, "getBearerUser parse public key err: %s", err.Error())
		return nil
	}

	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(authHeader, claims, func(t *jwt.Token) (any, error) {
		return pubKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		logger.Errorf(ctx, "getBearerUser parse jwt token err: %v", err)
		return nil
	}

	return &model.UserData{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	}
}

// getOAuthUser 使用 oauth 登录方式
func getOAuthUser(ctx *gin.Context, authHeader string) *model.UserData {
	userInfo, err := ValidateToken(ctx, string(AuthTypeBearer), authHeader)
	if err != nil {
		logger.Errorf(ctx, "Token validation failed: %v", err)
		return nil
	}
	return userInfo
}

// GetCurrentUser 从上下文中获取当前用户信息
func GetCurrentUser(ctx context.Context) *model.UserData {
	gCtx, ok := ctx.(*gin.Context)
	if !ok {
		return nil
	}

	user, exists := gCtx.Get(USERKEY)
	if !exists {
		return nil
	}
	return user.(*model.UserData)
}

// ResolveActor maps the authenticated user to the workgroup they act in.
// First-time users get a personal workgroup named after them.
func ResolveActor(ctx context.Context, account repo.Account) (*model.Actor, error) {
	user := GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}

	profile, err := account.GetProfile(ctx, user.ID)
	if code.From(err) == code.RecordNotFound {
		profile, err = account.EnsureProfile(ctx, user.ID, utils.Or(user.Name, user.ID))
	}
	if err != nil {
		return nil, err
	}

	return &model.Actor{
		UserID:      user.ID,
		WorkgroupID: profile.WorkgroupID,
	}, nil
}
