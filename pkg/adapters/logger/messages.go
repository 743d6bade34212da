package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Extracting frames from %s":             "%s からフレームを抽出中",
		"Detected %d scenes in %d frames of %s": "%dシーンを検出しました（%dフレーム、%s）",
		"Results written to %s and %s":          "結果を %s と %s に書き込みました",

		// Warnings
		"Failed to render predictions for %s: %s": "%s の予測画像の描画に失敗しました: %s",
		"Failed to save visualization for %s: %s": "%s の可視化画像の保存に失敗しました: %s",

		// Errors
		"Failed to process %s: %s": "%s の処理に失敗しました: %s",
	})
}
