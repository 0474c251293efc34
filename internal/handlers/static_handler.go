package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// IndexFile はSPAのエントリドキュメントです。
const IndexFile = "index.html"

// StaticHandler はフロントエンドの静的ファイルを配信し、
// 未知のパスにはエントリドキュメントを返します。
type StaticHandler struct {
	dir string
}

// NewStaticHandler は dir を公開ディレクトリとするStaticHandlerを作成します。
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// FallbackHandler はどのルートにも一致しないリクエストを処理します。
// GET/HEAD は実在するファイルかindex.htmlを200で返し、それ以外は404です。
func (h *StaticHandler) FallbackHandler(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	// path.Clean で "/.." を除去してから公開ディレクトリに結合する
	name := filepath.Join(h.dir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	if h.serveFile(c, name) {
		return
	}
	if h.serveFile(c, filepath.Join(h.dir, IndexFile)) {
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// serveFile は name が通常ファイルなら内容を返します。
// http.ServeFile はURLパスで "/index.html" のリダイレクトや ".." の拒否を行うため、
// ServeContent で直接送ります。
func (h *StaticHandler) serveFile(c *gin.Context, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return true
}
