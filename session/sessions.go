package session

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"rugcraft/bizerror"
	"rugcraft/common"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

const TokenExpiration = 24 * time.Hour

var TokenCache = cache.New(TokenExpiration, 1*time.Minute)

const KeySecCtx = "SecCtx"
const KeySecToken = "sec_token"

var ResolveIdentityFunc = ResolveIdentity

func ExtractSessionFromGinContext(ctx *gin.Context) *Session {
	value, found := ctx.Get(KeySecCtx)
	if !found {
		return &Session{Context: ctx.Request.Context()}
	}
	s0, ok := value.(*Session)
	if !ok || s0.Token == "" {
		return &Session{Context: ctx.Request.Context()}
	}
	s := s0.Clone()
	s.Context = ctx.Request.Context() // trace context
	return &s
}

// SimpleAuthFilter resolves the caller identity from the bearer token the
// commerce gateway already authenticated. The token itself is never
// validated here; the external auth service owns that.
func SimpleAuthFilter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" {
			panic(bizerror.ErrUnauthenticated)
		}
		cached, found := TokenCache.Get(token)
		if found {
			secCtx, ok := cached.(*Session)
			if !ok {
				panic(bizerror.ErrUnauthenticated)
			}
			InjectSessionIntoGinContext(ctx, secCtx)
			ctx.Next()
			return
		}

		secCtx, err := ResolveIdentityFunc(token, ctx.Request.Context())
		if err != nil {
			panic(bizerror.ErrUnauthenticated)
		}
		TokenCache.Set(token, secCtx, cache.DefaultExpiration)
		InjectSessionIntoGinContext(ctx, secCtx)
		ctx.Next()
	}
}

func InjectSessionIntoGinContext(ctx *gin.Context, secCtx *Session) {
	if secCtx != nil && secCtx.Token != "" {
		ctx.Set(KeySecCtx, secCtx)
	}
}

func extractToken(ctx *gin.Context) string {
	authorization := ctx.GetHeader("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}
	token, err := ctx.Cookie(KeySecToken)
	if err != nil {
		return ""
	}
	return token
}

type identityBody struct {
	User struct {
		ID    string   `json:"id"`
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	} `json:"user"`
}

// ResolveIdentity asks the external auth service who the token belongs to.
// AUTH_SERVICE_URL names the service; an empty value rejects every token.
func ResolveIdentity(token string, reqCtx context.Context) (*Session, error) {
	authServiceURL := os.Getenv("AUTH_SERVICE_URL")
	if authServiceURL == "" {
		return nil, bizerror.ErrUnauthenticated
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)
	respBody, err := common.HttpInvokeJson(http.MethodGet, authServiceURL+"/admin/users/me", headers, "")
	if err != nil {
		return nil, err
	}

	body := identityBody{}
	if err := json.Unmarshal([]byte(respBody), &body); err != nil {
		return nil, err
	}

	// upstream user ids are opaque; numeric ones are kept, others stay zero
	uid, _ := types.ParseID(body.User.ID)
	s := Session{Context: reqCtx, Token: token, Identity: Identity{ID: uid, Name: body.User.Email}}
	s.Perms = append(Permissions{}, body.User.Roles...)
	return &s, nil
}
