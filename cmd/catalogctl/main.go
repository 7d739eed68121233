// catalogctl is a small operator tool against the catalog API: it lists
// products the way the site pages through them, dumps the facet map, and
// reads contact submissions or deletes products with admin credentials.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/giftline/catalog-site/internal/catalog"
	"github.com/giftline/catalog-site/internal/config"
	"github.com/giftline/catalog-site/internal/gateway"
)

func main() {
	category := flag.String("category", "", "filter products by category")
	subcategory := flag.String("subcategory", "", "filter products by subcategory")
	username := flag.String("user", "", "admin username (contacts, delete)")
	password := flag.String("pass", "", "admin password (contacts, delete)")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}
	client := gateway.NewHTTPClient(cfg.APIBaseURL, cfg.APIKey)
	ctx := context.Background()

	switch flag.Arg(0) {
	case "products":
		listProducts(ctx, client, catalog.Selector{Category: *category, Subcategory: *subcategory})
	case "facets":
		listFacets(ctx, client)
	case "contacts":
		signIn(ctx, client, *username, *password)
		listContacts(ctx, client)
	case "delete":
		id, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("delete needs a numeric product id")
		}
		signIn(ctx, client, *username, *password)
		if err := client.DeleteProduct(ctx, id); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("deleted product %d\n", id)
	default:
		fmt.Fprintln(os.Stderr, "usage: catalogctl [flags] products|facets|contacts|delete <id>")
		os.Exit(2)
	}
}

func signIn(ctx context.Context, client *gateway.HTTPClient, username, password string) {
	if username == "" || password == "" {
		log.Fatal("admin credentials required: -user and -pass")
	}
	if err := client.SignIn(ctx, username, password); err != nil {
		log.Fatal("sign in: ", err)
	}
}

// listProducts pages through the catalog exactly as the site does, one page
// at a time until the short page.
func listProducts(ctx context.Context, client *gateway.HTTPClient, sel catalog.Selector) {
	eng := catalog.NewEngine(client)
	if err := eng.SetSelector(ctx, sel); err != nil {
		log.Fatal(err)
	}
	for eng.HasMore() {
		if err := eng.LoadMore(ctx); err != nil {
			log.Fatal(err)
		}
	}
	for _, p := range eng.Products() {
		sub := "-"
		if p.Subcategory != nil {
			sub = *p.Subcategory
		}
		fmt.Printf("%d\t%s\t%s/%s\t%s\n", p.ID, p.Name, p.Category, sub, p.ImageURL)
	}
}

func listFacets(ctx context.Context, client *gateway.HTTPClient) {
	eng := catalog.NewEngine(client)
	if err := eng.LoadFacets(ctx); err != nil {
		log.Fatal(err)
	}
	facets := eng.Facets()
	for _, cat := range facets.Categories {
		fmt.Println(cat)
		for _, sub := range facets.Subcategories[cat] {
			fmt.Println("  " + sub)
		}
	}
}

func listContacts(ctx context.Context, client *gateway.HTTPClient) {
	submissions, err := client.QueryContacts(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range submissions {
		fmt.Printf("%d\t%s\t%s\t%s\n", c.ID, c.CreatedAt, c.Name, c.Email)
	}
}
