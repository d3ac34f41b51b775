package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"niaga-be/internal/attribute"
	"niaga-be/internal/config"
	"niaga-be/internal/db"
	"niaga-be/internal/logger"
	"niaga-be/internal/tabular"
	"niaga-be/internal/variant"
)

func main() {
	file := flag.String("file", "", "exchange-format file to import")
	product := flag.String("product", "", "product id to attach variants to")
	dryRun := flag.Bool("dry-run", false, "validate only, persist nothing")
	template := flag.String("template", "", "write an empty import template to this .xlsx path and exit")
	export := flag.String("export", "", "export the product's variants to this path instead of importing")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	attrRepo := attribute.NewRepository(database)
	attrSvc := attribute.NewService(attrRepo, nil)

	variantRepo := variant.NewRepository(database)
	writer := variant.NewWriter(variantRepo, cfg.WriteRPS, cfg.WriteBurst, cfg.WriteMaxRetries)
	variantSvc := variant.NewService(variantRepo, attrSvc, writer, cfg.MaxCombinations)

	ctx := logger.WithJobID(context.Background(), uuid.NewString())

	switch {
	case *template != "":
		if err := writeTemplate(ctx, attrSvc, *template); err != nil {
			log.Fatalf("template failed: %v", err)
		}
	case *export != "":
		if *product == "" {
			log.Fatal("-product is required with -export")
		}
		if err := exportVariants(ctx, variantSvc, *product, *export); err != nil {
			log.Fatalf("export failed: %v", err)
		}
	default:
		if *file == "" || *product == "" {
			log.Fatal("-file and -product are required")
		}
		if err := importFile(ctx, variantSvc, attrSvc, *product, *file, *dryRun); err != nil {
			log.Fatalf("import failed: %v", err)
		}
	}
}

func importFile(ctx context.Context, svc variant.Service, attrs attribute.Service, productID, path string, dryRun bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if dryRun {
		return validateOnly(ctx, attrs, productID, raw)
	}

	created, err := svc.ImportTable(ctx, productID, raw)
	if err != nil {
		reportValidation(err)
		return err
	}

	fmt.Printf("✅ Imported %d variants for product %s\n", len(created), productID)
	return nil
}

func validateOnly(ctx context.Context, attrs attribute.Service, productID string, raw []byte) error {
	text, err := tabular.DecodeText(raw)
	if err != nil {
		return err
	}

	known, err := attrs.ListSelectable(ctx)
	if err != nil {
		return err
	}

	variants, err := variant.NewBuilder(known).BuildFromTable(productID, text)
	if err != nil {
		reportValidation(err)
		return err
	}

	fmt.Printf("✅ %d rows valid, nothing persisted (dry run)\n", len(variants))
	return nil
}

func reportValidation(err error) {
	ve, ok := variant.AsValidationError(err)
	if !ok {
		return
	}
	fmt.Printf("❌ %d validation issues:\n", len(ve.Issues))
	for _, is := range ve.Issues {
		fmt.Printf("  row %d [%s] %s\n", is.Index, is.Kind, is.Message)
	}
}

func writeTemplate(ctx context.Context, attrs attribute.Service, path string) error {
	known, err := attrs.ListSelectable(ctx)
	if err != nil {
		return err
	}

	names := make([]string, len(known))
	for i, a := range known {
		names[i] = a.Label()
	}

	f, err := tabular.Template(names)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return err
	}
	fmt.Printf("✅ Template written to %s\n", path)
	return nil
}

func exportVariants(ctx context.Context, svc variant.Service, productID, path string) error {
	logger.FromCtx(ctx).Info("exporting variants",
		zap.String("product_id", productID),
		zap.String("path", path),
	)

	if isXLSX(path) {
		f, err := svc.ExportWorkbook(ctx, productID)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(path); err != nil {
			return err
		}
	} else {
		text, err := svc.ExportTable(ctx, productID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return err
		}
	}

	fmt.Printf("✅ Exported variants for product %s to %s\n", productID, path)
	return nil
}

func isXLSX(path string) bool {
	return len(path) > 5 && path[len(path)-5:] == ".xlsx"
}
