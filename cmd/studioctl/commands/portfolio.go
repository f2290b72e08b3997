package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	categoryName         string
	categorySlug         string
	portfolioTitle       string
	portfolioCategory    string
	portfolioDescription string
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage portfolio categories",
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a portfolio category",
	Args:  cobra.NoArgs,
	RunE:  runCategoryCreate,
}

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Manage portfolio images",
}

var portfolioAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Add an image to the portfolio",
	Args:  cobra.ExactArgs(1),
	RunE:  runPortfolioAdd,
}

func init() {
	categoryCreateCmd.Flags().StringVarP(&categoryName, "name", "n", "", "Category name")
	categoryCreateCmd.Flags().StringVar(&categorySlug, "slug", "", "URL slug. Derived from the name when empty")
	_ = categoryCreateCmd.MarkFlagRequired("name")

	portfolioAddCmd.Flags().StringVarP(&portfolioTitle, "title", "t", "", "Image title")
	portfolioAddCmd.Flags().StringVarP(&portfolioCategory, "category", "c", "", "Category slug")
	portfolioAddCmd.Flags().StringVarP(&portfolioDescription, "description", "d", "", "Image description")
	_ = portfolioAddCmd.MarkFlagRequired("title")
	_ = portfolioAddCmd.MarkFlagRequired("category")

	categoryCmd.AddCommand(categoryCreateCmd)
	portfolioCmd.AddCommand(portfolioAddCmd)
	rootCmd.AddCommand(categoryCmd, portfolioCmd)
}

func runCategoryCreate(cmd *cobra.Command, args []string) error {
	category, err := application.PortfolioService.CreateCategory(categoryName, categorySlug)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	fmt.Fprintf(out, "Created category %d (%s)\n", category.ID, category.Slug)
	return nil
}

func runPortfolioAdd(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	image, err := application.PortfolioService.AddPortfolioImage(portfolioTitle, portfolioDescription, portfolioCategory, filepath.Base(args[0]), b)
	if err != nil {
		return fmt.Errorf("failed to add portfolio image: %w", err)
	}

	fmt.Fprintf(out, "Added portfolio image %d to %s as %s\n", image.ID, image.Category.Slug, image.ImagePath)
	return nil
}
