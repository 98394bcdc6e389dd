package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aura-studio/universe/hello"
	"github.com/aura-studio/universe/meta"
	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodHead, http.MethodOptions}

func (e *Engine) InstallHandlers() {
	e.HandleAllMethods("/health-check", e.OK)
	e.HandleAllMethods("/meta", e.Meta)
	e.HandleAllMethods("/_/*path", e.Debug)
	e.NoRoute(e.Hello)
}

func (e *Engine) HandleAllMethods(relativePath string, handlers ...gin.HandlerFunc) {
	for _, method := range methods {
		e.Handle(method, relativePath, handlers...)
	}
}

func (e *Engine) OK(c *gin.Context) {
	c.String(http.StatusOK, "OK")
	c.Abort()
}

func (e *Engine) Meta(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(meta.Generate().JSON()))
	c.Abort()
}

// Hello answers any other path with the function's response, mapping
// statusCode onto the HTTP status.
func (e *Engine) Hello(c *gin.Context) {
	resp, err := e.Invoker.Invoke(c.Request.Context(), e.genReq(c))
	if err != nil {
		c.String(http.StatusServiceUnavailable, err.Error())
		c.Abort()
		return
	}

	c.String(resp.StatusCode(), resp.Body())
	c.Abort()
}

// Debug invokes the function and reports the exchange as JSON.
func (e *Engine) Debug(c *gin.Context) {
	req := e.genReq(c)
	resp, err := e.Invoker.Invoke(c.Request.Context(), req)

	out := "{}"
	out, _ = sjson.Set(out, "path", c.Param("path"))
	out, _ = sjson.Set(out, "method", c.Request.Method)
	out, _ = sjson.Set(out, "request_id", c.GetString(RequestIDContext))
	out, _ = sjson.Set(out, "request", req)
	if err != nil {
		out, _ = sjson.Set(out, "error", err.Error())
	} else {
		out, _ = sjson.Set(out, "response", map[string]any(resp))
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(out))
	c.Abort()
}

// genReq builds the invocation request: query parameters for GET and HEAD,
// a JSON object body otherwise. Anything else becomes an empty request.
func (e *Engine) genReq(c *gin.Context) hello.Request {
	req := hello.Request{}

	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, "":
		for k, v := range c.Request.URL.Query() {
			req[k] = v[0]
		}
	default:
		if c.Request.Body == nil {
			return req
		}
		data, err := io.ReadAll(c.Request.Body)
		if err != nil || !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
			return req
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return hello.Request{}
		}
	}

	return req
}
