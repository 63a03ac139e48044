package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Loaded %s (%s, %d bytes)":                          "%s を読み込みました (%s, %d バイト)",
		"No file selected":                                  "ファイルが選択されていません",
		"Aspect ratio set to %s":                            "アスペクト比を %s に設定しました",
		"Crop adjusted: %.0fx%.0f at %.0f,%.0f (zoom %.2f)": "切り抜き範囲を調整: %.0fx%.0f 位置 %.0f,%.0f (ズーム %.2f)",
		"Cropped to %dx%d":                                  "%dx%d に切り抜きました",
		"Poster saved to %s (%dx%d)":                        "ポスターを %s に保存しました (%dx%d)",
		"Suggested crop %dx%d at %d,%d":                     "推奨切り抜き %dx%d 位置 %d,%d",
		"Serving on http://%s":                              "http://%s で待ち受けています",
		"Interrupted, shutting down...":                     "中断されました。シャットダウン中...",

		// Load stage
		"Reading %s":                            "%s を読み込み中",
		"Not decodable, dimensions unknown: %s": "デコードできません。サイズ不明: %s",

		// Crop stage
		"Decoded source %dx%d":         "元画像をデコードしました %dx%d",
		"Resolved native rectangle %v": "ネイティブ座標の矩形を決定しました %v",
		"Encoded crop: %d bytes":       "切り抜き画像をエンコードしました: %d バイト",

		// Compose stage
		"Composing %s view %dx%d": "%s ビューを合成中 %dx%d",

		// Export stage
		"Rasterizing %dx%d at %.1fx":            "%dx%d を %.1f 倍でラスタライズ中",
		"Rasterized %dx%d, resampling to %dx%d": "%dx%d でラスタライズされました。%dx%d にリサンプリングします",
		"Launching browser":                     "ブラウザを起動中",

		// Warnings
		"Discarded stale %s result from generation %d (current %d)": "古い %s の結果を破棄しました (世代 %d, 現在 %d)",
		"Ratio changed after cropping; crop again":                  "切り抜き後に比率が変更されました。再度切り抜いてください",

		// Errors
		"Failed to load image: %s":     "画像の読み込みに失敗しました: %s",
		"Failed to crop image: %s":     "画像の切り抜きに失敗しました: %s",
		"Failed to compose poster: %s": "ポスターの合成に失敗しました: %s",
		"Failed to export poster: %s":  "ポスターの書き出しに失敗しました: %s",
		"Failed to render page: %s":    "ページの描画に失敗しました: %s",
		"Failed to write response: %s": "レスポンスの書き込みに失敗しました: %s",
		"Failed to load font %s: %s":   "フォントの読み込みに失敗しました %s: %s",

		// Server
		"HTTP %s %s -> %d (%s)": "HTTP %s %s -> %d (%s)",
	})
}
