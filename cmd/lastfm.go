package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"EchoFM/config"
	"EchoFM/core/lastfm"

	"github.com/spf13/cobra"
)

var (
	seedArtist string
	seedTitle  string
	seedLimit  int
)

var lastfmCmd = &cobra.Command{
	Use:   "lastfm",
	Short: "Last.fm相似歌曲查询工具",
	Long:  `一个简单的Last.fm命令行工具，根据种子歌曲查询相似歌曲列表`,
	Run: func(cmd *cobra.Command, args []string) {
		if seedArtist == "" || seedTitle == "" {
			fmt.Println("请通过 --artist 和 --title 指定种子歌曲")
			os.Exit(1)
		}

		cfg := config.Load()
		client := lastfm.NewClient(cfg.LastfmAPIKey)
		client.SetBaseURL(cfg.LastfmBaseURL)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		fmt.Printf("正在查询与 %s - %s 相似的歌曲...\n", seedArtist, seedTitle)
		tracks, err := client.GetSimilarTracks(ctx, seedArtist, seedTitle, seedLimit)
		if err != nil {
			log.Fatalf("查询失败: %v", err)
		}

		if len(tracks) == 0 {
			fmt.Println("未找到相似歌曲")
			return
		}

		fmt.Printf("\n找到 %d 首相似歌曲:\n", len(tracks))
		for i, t := range tracks {
			fmt.Printf("%d. %s - %s (match: %.2f)\n", i+1, t.Artist, t.Title, t.Match)
		}
	},
}

func init() {
	lastfmCmd.Flags().StringVar(&seedArtist, "artist", "", "种子歌曲的艺术家")
	lastfmCmd.Flags().StringVar(&seedTitle, "title", "", "种子歌曲的标题")
	lastfmCmd.Flags().IntVar(&seedLimit, "limit", 10, "返回结果数量")
	rootCmd.AddCommand(lastfmCmd)
}
