package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jyagua/EasyPromo/config"
	"github.com/jyagua/EasyPromo/provider/aliexpress"
)

var (
	searchPage int
	searchSort string
)

var productsSearchCmd = &cobra.Command{
	Use:   "products:search [keywords]",
	Short: "Query the affiliate feed and print one page of results",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()
		cfg := config.AppConfig

		keywords := ""
		if len(args) > 0 {
			keywords = args[0]
		}

		client := aliexpress.NewClient(aliexpress.Config{
			BaseURL:        cfg.AffiliateBaseURL,
			AppKey:         cfg.AppKey,
			AppSecret:      cfg.AppSecret,
			TrackingID:     cfg.TrackingID,
			ShipToCountry:  cfg.ShipToCountry,
			TargetCurrency: cfg.TargetCurrency,
			TargetLanguage: cfg.TargetLanguage,
			PageSize:       cfg.PageSize,
		})

		products, total, err := client.Search(context.Background(), searchPage, keywords, searchSort)
		if err != nil {
			fmt.Printf("Search failed: %v\n", err)
			return
		}

		fmt.Printf("Page %d (%d total records)\n", searchPage, total)
		for _, p := range products {
			fmt.Printf("  %-14d %-50.50s %8.2f", p.ID, p.Name, p.Price)
			if p.DiscountPercent > 0 {
				fmt.Printf("  -%.0f%%", p.DiscountPercent)
			}
			fmt.Println()
		}
		if len(products) == 0 {
			fmt.Println("  (no results)")
		}
	},
}

func init() {
	productsSearchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "Page number to fetch")
	productsSearchCmd.Flags().StringVarP(&searchSort, "sort", "s", "", "Provider sort order (e.g. SALE_PRICE_ASC)")
	Register(productsSearchCmd)
}
