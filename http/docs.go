package http

import (
	"embed"
	"io/fs"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SwaggerURL 文档入口
const SwaggerURL = "/swagger"

//go:embed static/*.yaml
var staticFiles embed.FS

// DocsConfig 指定服务使用的OpenAPI文件
type DocsConfig struct {
	SchemaFile string
}

var (
	PredictDocs = DocsConfig{SchemaFile: "openapi_predict.yaml"}
	PricingDocs = DocsConfig{SchemaFile: "openapi_pricing.yaml"}
)

// RegisterDocs 注册根路由重定向、swagger UI 和静态schema
func RegisterDocs(mux *http.ServeMux, docs DocsConfig) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, SwaggerURL, http.StatusFound)
	})
	mux.HandleFunc("GET "+SwaggerURL, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, SwaggerURL+"/index.html", http.StatusFound)
	})
	mux.Handle("GET "+SwaggerURL+"/", httpSwagger.Handler(
		httpSwagger.URL("/static/"+docs.SchemaFile),
	))

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}
