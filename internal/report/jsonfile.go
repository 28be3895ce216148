// internal/report/jsonfile.go
//
// JSON 輸出：寫到任意 io.Writer，或以原子方式寫成檔案。
// 寫檔時先寫入 .tmp，再以 rename 取代正式檔，中途失敗不會留下半份檔案。

package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteJSON 以兩格縮排輸出 v。
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode json")
}

// SaveJSON 將 v 寫入 path（原子替換）。上層目錄不存在時會建立。
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "create %s", tmp)
	}
	if err := WriteJSON(f, v); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "close %s", tmp)
	}

	// 原子替換
	return errors.Wrapf(os.Rename(tmp, path), "rename %s", tmp)
}
