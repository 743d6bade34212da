// Package main provides localization for the sceneshot CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Detect shot and scene boundaries in videos": "動画のショット・シーン境界を検出",

		// Detect command
		"Detect scene boundaries in one or more video files": "1つ以上の動画ファイルのシーン境界を検出",

		// Flags
		"Path to YAML configuration file": "YAML設定ファイルのパス",
		"Path to the ONNX model file":     "ONNXモデルファイルのパス",
		"Boundary score threshold (0-1)":  "境界スコアのしきい値（0-1）",
		"MQTT broker address (host:port); omit to print events to stdout":           "MQTTブローカーのアドレス（host:port）。省略時はイベントを標準出力に表示",
		"MQTT topic for scene events":                                               "シーンイベントのMQTTトピック",
		"Directory for prediction and scene files (default: next to each video)":    "予測・シーンファイルの出力ディレクトリ（デフォルト: 各動画の隣）",
		"Path to the ffmpeg executable":                                             "ffmpeg実行ファイルのパス",
		"Render a prediction image per video (requires --debug)":                    "動画ごとに予測画像を描画（--debugが必要）",
		"Enable debug output":                                                       "デバッグ出力を有効化",
		"Directory for debug output":                                                "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":                                      "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                                   "全てのログ出力を抑制",

		// Runtime messages
		"Interrupted, shutting down...":           "中断されました。シャットダウン中...",
		"at least one video argument is required": "少なくとも1つの動画引数が必要です",
		"%s: %d frames, %d scenes":                "%s: %dフレーム, %dシーン",

		// Summary output
		"Output run summary to file (Markdown format)": "実行サマリーをファイルに出力（Markdown形式）",
		"Summary saved to %s":                          "サマリーを %s に保存しました",
		"Failed to write summary: %s":                  "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Detection Summary": "検出サマリー",
		"Generated":         "生成日時",
		"Settings":          "設定",
		"Videos":            "動画",
		"Item":              "項目",
		"Value":             "値",
		"Model":             "モデル",
		"Threshold":         "しきい値",
		"Window Length":     "ウィンドウ長",
		"Transport":         "トランスポート",
		"Frame Count":       "フレーム数",
		"Windows":           "ウィンドウ数",
		"Events":            "イベント数",
		"Scenes":            "シーン数",
		"Scene":             "シーン",
		"Start Frame":       "開始フレーム",
		"End Frame":         "終了フレーム",
		"Generated by":      "生成:",
	})
}
