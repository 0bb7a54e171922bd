// Package config はアプリケーション設定を管理します。
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します。
// 実行ごとの描画パラメータはCLIフラグで渡されるため、ここには環境に依存する
// 値だけを持ちます。
type Config struct {
	// デフォルトの対象ユーザー（--userで上書き可能）
	User string

	// フィードAPIのベースURL（テストで差し替えるためのフック）
	FeedURL string

	// 実行ジャーナル用のデータディレクトリ。未設定ならジャーナルは無効。
	DataDir string

	// HTTPサーバーのポート（サーブモード）
	Port string

	// ジャーナルAPIの認証キー
	APIKey string
}

// NewConfig は環境変数から設定を読み込み、Configインスタンスを生成します。
// カレントディレクトリに.envがあれば先に読み込みます。
func NewConfig() *Config {
	_ = godotenv.Load()

	// 対象ユーザーの設定（元スクリプトと同じHF_USERNAMEも受け付ける）
	user := os.Getenv("KUSAGEN_USER")
	if user == "" {
		user = os.Getenv("HF_USERNAME")
	}

	// ポートの設定
	port := os.Getenv("KUSAGEN_SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		User:    user,
		FeedURL: os.Getenv("KUSAGEN_FEED_URL"),
		DataDir: os.Getenv("KUSAGEN_DATA_DIR"),
		Port:    port,
		APIKey:  os.Getenv("KUSAGEN_API_KEY"),
	}
}
