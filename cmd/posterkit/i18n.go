// Package main provides localization for the posterkit CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":         "出力先",
		"Rendering":      "レンダリング",
		"Crop selection": "切り抜き範囲",
		"Debug":          "デバッグ",
		"Logging":        "ログ",

		// Root command
		"Crop a photo and frame it with a poster template": "写真を切り抜いてポスターテンプレートに収める",
		"posterkit crops an image to a fixed aspect ratio, lays it under an overlay template and exports poster.png at twice the view size.": "posterkitは画像を固定のアスペクト比で切り抜き、オーバーレイテンプレートの下に配置して、表示サイズの2倍でposter.pngを書き出します。",

		// Commands
		"Crop an image to an aspect ratio":                "画像をアスペクト比に合わせて切り抜く",
		"Crop an image, frame it and export poster.png":   "画像を切り抜き、枠に収めてposter.pngを書き出す",
		"Run the poster tool in the browser":              "ブラウザでポスターツールを起動",
		"List the overlay template for each aspect ratio": "アスペクト比ごとのオーバーレイテンプレートを一覧表示",
		"Show version information":                        "バージョン情報を表示",
		"posterkit version %s":                            "posterkit バージョン %s",

		// Global flags
		"Configuration file (default: ./posterkit.yaml if present)": "設定ファイル（デフォルト: ./posterkit.yaml があれば使用）",
		"Rasterizer used for export (software, chrome)":             "書き出しに使うラスタライザ（software, chrome）",
		"Path to Chrome executable":                                 "Chrome実行ファイルのパス",
		"Run browser in non-headless mode":                          "ブラウザを非ヘッドレスモードで実行",
		"Enable debug output":                                       "デバッグ出力を有効化",
		"Directory for debug output":                                "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":                      "ログレベル（debug, info, warn, error）",
		"Also write logs to a rotated file":                         "ローテーションするファイルにもログを書き込む",
		"Suppress all log output":                                   "全てのログ出力を抑制",

		// Selection flags
		"Aspect ratio (1:1, 4:3, 3:4)":                 "アスペクト比（1:1, 4:3, 3:4）",
		"Pick the most interesting area automatically": "注目領域を自動で選択",
		"Crop rectangle left edge":                     "切り抜き矩形の左端",
		"Crop rectangle top edge":                      "切り抜き矩形の上端",
		"Crop rectangle width":                         "切り抜き矩形の幅",
		"Crop rectangle height":                        "切り抜き矩形の高さ",
		"Width of the space the rectangle is expressed in (default: native pixels)":  "矩形の基準となる幅（デフォルト: 元画像のピクセル）",
		"Height of the space the rectangle is expressed in (default: native pixels)": "矩形の基準となる高さ（デフォルト: 元画像のピクセル）",
		"Pan offset in percent of the image width":                                   "画像幅に対するパン位置（%）",
		"Pan offset in percent of the image height":                                  "画像高さに対するパン位置（%）",
		"Zoom factor (1 = largest crop)":                                             "ズーム倍率（1 = 最大の切り抜き）",

		// Output flags
		"Output PNG file path":                                    "出力PNGファイルパス",
		"Directory poster.png is written to":                      "poster.pngの出力先ディレクトリ",
		"Output file name":                                        "出力ファイル名",
		"Export scale factor (default: 2)":                        "書き出し倍率（デフォルト: 2）",
		"Width of the composed view in CSS pixels":                "合成ビューの幅（CSSピクセル）",
		"Address to listen on (default: 127.0.0.1:8080)":          "待ち受けアドレス（デフォルト: 127.0.0.1:8080）",
		"Also keep a copy of each export in this directory":       "書き出し結果のコピーをこのディレクトリにも保存",
		"Write a contact sheet of all templates to this PNG file": "全テンプレートの一覧画像をこのPNGファイルに書き出す",

		// Templates listing
		"Ratio":  "比率",
		"Size":   "サイズ",
		"Origin": "由来",

		// Runtime messages
		"Output saved to %s":            "出力を %s に保存しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Summary
		"Output execution summary to file (Markdown format)": "実行サマリーをファイルに出力（Markdown形式）",
		"Summary saved to %s":                                "サマリーを %s に保存しました",
		"Failed to write summary: %s":                        "サマリーの書き込みに失敗しました: %s",
		"Poster Summary":                                     "ポスターサマリー",
		"Generated":                                          "生成日時",
		"Item":                                               "項目",
		"Value":                                              "値",
		"Source":                                             "元画像",
		"File":                                               "ファイル",
		"Type":                                               "形式",
		"Dimensions":                                         "サイズ",
		"File Size":                                          "ファイルサイズ",
		"Crop":                                               "切り抜き",
		"Aspect Ratio":                                       "アスペクト比",
		"Crop Rectangle":                                     "切り抜き矩形",
		"Zoom":                                               "ズーム",
		"Selection":                                          "選択方法",
		"Manual":                                             "手動",
		"Automatic":                                          "自動",
		"Settings":                                           "設定",
		"View Width":                                         "ビュー幅",
		"Scale":                                              "倍率",
		"Rasterizer":                                         "ラスタライザ",
		"Poster":                                             "ポスター",
		"View Size":                                          "ビューサイズ",
		"Download only":                                      "ダウンロードのみ",
		"Elapsed":                                            "所要時間",
		"Generated by":                                       "生成:",

		// Error messages
		"Image argument is required": "画像の引数が必要です",
	})
}
