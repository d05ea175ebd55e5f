package cli

import (
	"fmt"

	"github.com/existflow/upcycle/internal/browse"
	"github.com/existflow/upcycle/internal/catalog"
	"github.com/spf13/cobra"
)

var inventoryCmd = &cobra.Command{
	Use:     "inventory",
	Aliases: []string{"inv"},
	Short:   "List scanned items",
	RunE:    runInventory,
}

var inventoryCategory string

func init() {
	inventoryCmd.Flags().StringVarP(&inventoryCategory, "category", "c", "", "Only items of this category")
}

func runInventory(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	items := sess.store.Inventory()
	if inventoryCategory != "" {
		items = browse.InventoryByCategory(items, inventoryCategory)
	}
	if len(items) == 0 {
		fmt.Println("Inventory is empty. Add something with: upcycle scan")
		return nil
	}

	for _, item := range items {
		category := catalog.FindCategory(item.Category)
		fmt.Printf("%s %-26s %-9s %-8s %-12s %s\n",
			swatch(category.Color), truncate(item.Name, 26), item.Category,
			item.Weight, item.DateAdded, warnStyle.Render(item.Status))
	}

	if inventoryCategory == "" {
		return nil
	}
	if ideas := browse.IdeasByCategory(sess.store.Ideas(), inventoryCategory); len(ideas) > 0 {
		fmt.Println("\n" + sectionStyle.Render("Ide untuk "+inventoryCategory))
		for _, idea := range ideas {
			fmt.Printf("  %-4d %s\n", idea.ID, idea.Title)
		}
	}
	return nil
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show waste categories and handling tips",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range catalog.Categories() {
			fmt.Printf("%s %s\n", swatch(c.Color), titleStyle.Render(c.Name))
			fmt.Println("  " + c.Description)
			for _, t := range c.Types {
				fmt.Printf("  %-7s %s (%s), daur ulang %s\n", t.Code, t.Name, t.Examples, t.Recyclability)
			}
			for _, tip := range c.Tips {
				fmt.Println(mutedStyle.Render("  tip: " + tip))
			}
		}
		return nil
	},
}

func init() {
	inventoryCmd.AddCommand(categoriesCmd)
}
