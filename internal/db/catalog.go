package db

import "github.com/jrbgold/jrb-backend/internal/app/model"

func int64Ptr(v int64) *int64 {
	return &v
}

// CatalogProducts 매장 기본 상품 목록
func CatalogProducts() []model.Product {
	return []model.Product{
		{
			ID:                   "1",
			Name:                 "Elegant Gold Bangle",
			Category:             "22k Gold Bangles",
			Description:          "A stunning 22k gold bangle featuring intricate traditional designs. Perfect for special occasions and celebrations. Handcrafted by skilled artisans with attention to every detail.",
			ImageURL:             "/images/product-bangle.jpg",
			Weight:               8.5,
			Karat:                "22k",
			MakingChargesPercent: 15,
			BasePrice:            45200,
			BaseCompareAtPrice:   int64Ptr(48500),
			RatingAvg:            4.8,
			RatingCount:          124,
			Badges:               []string{"no-wastage", "new"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "22k Gold (916 Hallmark)"},
				{Label: "Weight", Value: "8.5 grams"},
				{Label: "Width", Value: "12mm"},
				{Label: "Diameter", Value: "2.4 inches"},
				{Label: "Clasp Type", Value: "Hinged opening"},
				{Label: "Finish", Value: "High polish"},
				{Label: "Certification", Value: "BIS Hallmarked"},
			},
			Features: []string{
				"BIS Hallmarked for purity guarantee",
				"Traditional handcrafted design",
				"Comfortable fit for daily wear",
				"No making charges policy",
				"Lifetime exchange guarantee",
			},
			InStock:   true,
			SortOrder: 1,
		},
		{
			ID:                   "2",
			Name:                 "Pure Gold Coin - Lakshmi",
			Category:             "24k Gold Coins",
			Description:          "Pure 24k gold coin featuring Goddess Lakshmi design. Perfect for gifting and investment purposes. Comes with authenticity certificate.",
			ImageURL:             "/images/product-coin.jpg",
			Weight:               2.0,
			Karat:                "24k",
			MakingChargesPercent: 3,
			BasePrice:            7850,
			RatingAvg:            4.9,
			RatingCount:          256,
			Badges:               []string{"certified", "investment"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "24k Gold (999 Fineness)"},
				{Label: "Weight", Value: "2.0 grams"},
				{Label: "Diameter", Value: "20mm"},
				{Label: "Thickness", Value: "1.5mm"},
				{Label: "Design", Value: "Goddess Lakshmi"},
				{Label: "Certification", Value: "MMTC-PAMP Certified"},
				{Label: "Packaging", Value: "Tamper-proof assay card"},
			},
			Features: []string{
				"999 purity certified gold",
				"MMTC-PAMP authentication",
				"Investment grade quality",
				"Tamper-proof packaging",
				"Buyback guarantee available",
			},
			InStock:   true,
			SortOrder: 2,
		},
		{
			ID:                   "3",
			Name:                 "Silver Temple Necklace",
			Category:             "Pure Silver Jewelry",
			Description:          "Exquisite pure silver necklace with traditional temple design motifs. Handcrafted by master artisans using age-old techniques.",
			ImageURL:             "/images/product-necklace.jpg",
			Weight:               25.0,
			SilverPurity:         "925",
			MakingChargesPercent: 12,
			BasePrice:            3200,
			RatingAvg:            4.7,
			RatingCount:          89,
			Badges:               []string{"handcrafted", "traditional"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "92.5% Sterling Silver"},
				{Label: "Weight", Value: "25.0 grams"},
				{Label: "Length", Value: "16 inches"},
				{Label: "Pendant Size", Value: "3cm x 2cm"},
				{Label: "Chain Type", Value: "Box chain"},
				{Label: "Clasp", Value: "Spring ring clasp"},
				{Label: "Finish", Value: "Oxidized antique"},
			},
			Features: []string{
				"Sterling silver 925 quality",
				"Traditional temple artwork",
				"Handcrafted by artisans",
				"Antique oxidized finish",
				"Adjustable chain length",
			},
			InStock:   true,
			SortOrder: 3,
		},
		{
			ID:                   "4",
			Name:                 "Diamond Gold Ring Set",
			Category:             "22k Diamond Jewelry",
			Description:          "Elegant set of two matching rings in 22k gold with natural diamonds. Perfect for engagements or as a gift set.",
			ImageURL:             "/images/hero-jewelry.jpg",
			Weight:               6.2,
			Karat:                "22k",
			MakingChargesPercent: 20,
			BasePrice:            32400,
			BaseCompareAtPrice:   int64Ptr(35200),
			RatingAvg:            4.8,
			RatingCount:          67,
			Badges:               []string{"no-wastage", "sale", "premium"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "22k Gold (916 Hallmark)"},
				{Label: "Total Weight", Value: "6.2 grams"},
				{Label: "Diamond Quality", Value: "VS-SI, F-G Color"},
				{Label: "Total Diamonds", Value: "12 pieces (0.24 carat)"},
				{Label: "Ring Sizes", Value: "Adjustable 14-18"},
				{Label: "Setting", Value: "Prong setting"},
				{Label: "Certification", Value: "IGI Certified diamonds"},
			},
			Features: []string{
				"Natural diamond certification",
				"Matching pair design",
				"Adjustable ring sizes",
				"Premium gift packaging",
				"Free resizing service",
			},
			InStock:   true,
			SortOrder: 4,
		},
		{
			ID:                   "5",
			Name:                 "Gold Chain - Rope Design",
			Category:             "22k Gold Chains",
			Description:          "Classic rope design gold chain in 22k purity. Versatile piece suitable for both casual and formal occasions.",
			ImageURL:             "/images/gold-collection.jpg",
			Weight:               10.5,
			Karat:                "22k",
			MakingChargesPercent: 8,
			BasePrice:            52800,
			RatingAvg:            4.9,
			RatingCount:          143,
			Badges:               []string{"premium", "bestseller"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "22k Gold (916 Hallmark)"},
				{Label: "Weight", Value: "10.5 grams"},
				{Label: "Length", Value: "20 inches"},
				{Label: "Width", Value: "3mm"},
				{Label: "Chain Type", Value: "Rope design"},
				{Label: "Clasp", Value: "Lobster clasp"},
				{Label: "Finish", Value: "High polish mirror finish"},
			},
			Features: []string{
				"Durable rope construction",
				"Mirror finish polish",
				"Secure lobster clasp",
				"Suitable for pendants",
				"Lifetime maintenance",
			},
			InStock:   true,
			SortOrder: 5,
		},
		{
			ID:                   "6",
			Name:                 "Silver Antique Bracelet",
			Category:             "Pure Silver Jewelry",
			Description:          "Vintage-inspired silver bracelet with intricate filigree work. Each piece is unique and handcrafted by skilled artisans.",
			ImageURL:             "/images/craftsmanship.jpg",
			Weight:               18.0,
			SilverPurity:         "925",
			MakingChargesPercent: 10,
			BasePrice:            2800,
			RatingAvg:            4.6,
			RatingCount:          52,
			Badges:               []string{"handcrafted", "antique"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "92.5% Sterling Silver"},
				{Label: "Weight", Value: "18.0 grams"},
				{Label: "Length", Value: "7.5 inches"},
				{Label: "Width", Value: "15mm"},
				{Label: "Design", Value: "Filigree work"},
				{Label: "Clasp", Value: "Toggle clasp"},
				{Label: "Finish", Value: "Antique patina"},
			},
			Features: []string{
				"Unique filigree artwork",
				"Vintage antique finish",
				"Comfortable toggle clasp",
				"Handmade craftsmanship",
				"Adjustable sizing available",
			},
			InStock:   true,
			SortOrder: 6,
		},
		{
			ID:                   "7",
			Name:                 "Gold Earrings - Jhumka Style",
			Category:             "22k Gold Earrings",
			Description:          "Traditional jhumka style earrings in 22k gold with intricate bell design. Perfect for festivals and special occasions.",
			ImageURL:             "/images/product-bangle.jpg",
			Weight:               5.8,
			Karat:                "22k",
			MakingChargesPercent: 18,
			BasePrice:            28500,
			RatingAvg:            4.7,
			RatingCount:          98,
			Badges:               []string{"traditional", "handcrafted"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "22k Gold (916 Hallmark)"},
				{Label: "Weight", Value: "5.8 grams"},
				{Label: "Length", Value: "4cm"},
				{Label: "Width", Value: "2.5cm"},
				{Label: "Style", Value: "Traditional Jhumka"},
				{Label: "Back Type", Value: "Screw back"},
				{Label: "Finish", Value: "Textured gold"},
			},
			Features: []string{
				"Traditional jhumka design",
				"Secure screw back closure",
				"Lightweight comfortable wear",
				"Festival special design",
				"Matching necklace available",
			},
			InStock:   true,
			SortOrder: 7,
		},
		{
			ID:                   "8",
			Name:                 "Platinum Wedding Band",
			Category:             "Platinum Jewelry",
			Description:          "Classic platinum wedding band with brushed finish. Hypoallergenic and perfect for everyday wear.",
			ImageURL:             "/images/hero-jewelry.jpg",
			Weight:               4.5,
			PlatinumPurity:       "pure",
			MakingChargesPercent: 15,
			BasePrice:            45000,
			RatingAvg:            4.9,
			RatingCount:          76,
			Badges:               []string{"premium", "wedding", "lifetime"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "95% Platinum (Pt950)"},
				{Label: "Weight", Value: "4.5 grams"},
				{Label: "Width", Value: "4mm"},
				{Label: "Thickness", Value: "1.5mm"},
				{Label: "Finish", Value: "Brushed matte"},
				{Label: "Ring Size", Value: "Customizable"},
				{Label: "Certification", Value: "Platinum Guild certified"},
			},
			Features: []string{
				"Hypoallergenic platinum",
				"Lifetime durability",
				"Comfortable fit design",
				"Free engraving service",
				"Lifetime warranty",
			},
			InStock:   true,
			SortOrder: 8,
		},
		{
			ID:                   "9",
			Name:                 "Gold Pendant - Om Symbol",
			Category:             "22k Gold Pendants",
			Description:          "Sacred Om symbol pendant in 22k gold. Perfect for spiritual wear and as a meaningful gift.",
			ImageURL:             "/images/gold-collection.jpg",
			Weight:               3.2,
			Karat:                "22k",
			MakingChargesPercent: 12,
			BasePrice:            15600,
			RatingAvg:            4.8,
			RatingCount:          134,
			Badges:               []string{"spiritual", "gifting"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "22k Gold (916 Hallmark)"},
				{Label: "Weight", Value: "3.2 grams"},
				{Label: "Height", Value: "2.5cm"},
				{Label: "Width", Value: "2cm"},
				{Label: "Design", Value: "Om Symbol"},
				{Label: "Bail Size", Value: "5mm"},
				{Label: "Finish", Value: "High polish"},
			},
			Features: []string{
				"Sacred Om symbol design",
				"Spiritual significance",
				"Perfect gifting option",
				"Suitable for all chains",
				"Religious blessing included",
			},
			InStock:   true,
			SortOrder: 9,
		},
		{
			ID:                   "10",
			Name:                 "Diamond Stud Earrings",
			Category:             "Diamond Jewelry",
			Description:          "Classic diamond stud earrings in 18k white gold. Perfect for daily wear and special occasions.",
			ImageURL:             "/images/craftsmanship.jpg",
			Weight:               2.1,
			Karat:                "18k",
			MakingChargesPercent: 25,
			BasePrice:            38900,
			RatingAvg:            4.9,
			RatingCount:          187,
			Badges:               []string{"diamond", "premium", "certified"},
			Specifications: []model.ProductSpec{
				{Label: "Metal", Value: "18k White Gold"},
				{Label: "Total Weight", Value: "2.1 grams"},
				{Label: "Diamond Weight", Value: "0.50 carat total"},
				{Label: "Diamond Quality", Value: "VS1-VS2, F-G Color"},
				{Label: "Setting", Value: "4-prong setting"},
				{Label: "Back Type", Value: "Push back"},
				{Label: "Certification", Value: "GIA Certified"},
			},
			Features: []string{
				"GIA certified diamonds",
				"18k white gold setting",
				"Classic timeless design",
				"Secure push back closure",
				"Certificate of authenticity",
			},
			InStock:   true,
			SortOrder: 10,
		},
		{
			ID:                   "11",
			Name:                 "Gold Mangalsutra Chain",
			Category:             "22k Gold Chains",
			Description:          "Traditional mangalsutra chain in 22k gold with black beads. Sacred jewelry for married women.",
			ImageURL:             "/images/product-necklace.jpg",
			Weight:               8.8,
			Karat:                "22k",
			MakingChargesPercent: 10,
			BasePrice:            42300,
			RatingAvg:            4.8,
			RatingCount:          156,
			Badges:               []string{"traditional", "sacred", "handcrafted"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "22k Gold (916 Hallmark)"},
				{Label: "Weight", Value: "8.8 grams"},
				{Label: "Length", Value: "24 inches"},
				{Label: "Bead Type", Value: "Natural black onyx"},
				{Label: "Chain Style", Value: "Traditional pattern"},
				{Label: "Clasp", Value: "Hook clasp"},
				{Label: "Pendant", Value: "Included"},
			},
			Features: []string{
				"Sacred traditional design",
				"Natural black onyx beads",
				"Adjustable length",
				"Matching pendant included",
				"Blessed by priests",
			},
			InStock:   true,
			SortOrder: 11,
		},
		{
			ID:                   "12",
			Name:                 "Silver Anklet Pair",
			Category:             "Pure Silver Jewelry",
			Description:          "Traditional silver anklet pair with ghungroo bells. Handcrafted with intricate patterns.",
			ImageURL:             "/images/product-bangle.jpg",
			Weight:               32.0,
			SilverPurity:         "925",
			MakingChargesPercent: 8,
			BasePrice:            4200,
			RatingAvg:            4.6,
			RatingCount:          73,
			Badges:               []string{"pair", "traditional", "handcrafted"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "92.5% Sterling Silver"},
				{Label: "Weight", Value: "32.0 grams (pair)"},
				{Label: "Length", Value: "9.5 inches each"},
				{Label: "Width", Value: "8mm"},
				{Label: "Bells", Value: "12 ghungroos each"},
				{Label: "Clasp", Value: "S-hook clasp"},
				{Label: "Finish", Value: "Oxidized silver"},
			},
			Features: []string{
				"Matching pair included",
				"Traditional ghungroo bells",
				"Comfortable fit design",
				"Adjustable sizing",
				"Cultural significance",
			},
			InStock:   true,
			SortOrder: 12,
		},
		{
			ID:                   "13",
			Name:                 "Platinum Solitaire Ring",
			Category:             "Platinum Jewelry",
			Description:          "Elegant platinum solitaire ring with brilliant cut diamond. Perfect for engagements and special occasions.",
			ImageURL:             "/images/hero-jewelry.jpg",
			Weight:               3.8,
			PlatinumPurity:       "pure",
			MakingChargesPercent: 20,
			BasePrice:            85000,
			RatingAvg:            4.9,
			RatingCount:          45,
			Badges:               []string{"premium", "diamond", "engagement"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "95% Platinum (Pt950)"},
				{Label: "Weight", Value: "3.8 grams"},
				{Label: "Diamond Weight", Value: "0.75 carat"},
				{Label: "Diamond Quality", Value: "VS1, F Color"},
				{Label: "Setting", Value: "6-prong solitaire"},
				{Label: "Ring Size", Value: "Customizable"},
				{Label: "Certification", Value: "GIA Certified diamond"},
			},
			Features: []string{
				"GIA certified diamond",
				"Platinum setting durability",
				"Classic solitaire design",
				"Free resizing service",
				"Lifetime warranty",
			},
			InStock:   true,
			SortOrder: 13,
		},
		{
			ID:                   "14",
			Name:                 "Platinum Chain Necklace",
			Category:             "Platinum Jewelry",
			Description:          "Premium platinum chain necklace with box link design. Hypoallergenic and perfect for sensitive skin.",
			ImageURL:             "/images/gold-collection.jpg",
			Weight:               8.2,
			PlatinumPurity:       "pure",
			MakingChargesPercent: 12,
			BasePrice:            65000,
			RatingAvg:            4.8,
			RatingCount:          32,
			Badges:               []string{"premium", "hypoallergenic"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "95% Platinum (Pt950)"},
				{Label: "Weight", Value: "8.2 grams"},
				{Label: "Length", Value: "18 inches"},
				{Label: "Width", Value: "2.5mm"},
				{Label: "Chain Type", Value: "Box link"},
				{Label: "Clasp", Value: "Lobster clasp"},
				{Label: "Finish", Value: "High polish"},
			},
			Features: []string{
				"Hypoallergenic platinum",
				"Durable box link construction",
				"Secure lobster clasp",
				"Tarnish resistant",
				"Lifetime maintenance",
			},
			InStock:   true,
			SortOrder: 14,
		},
		{
			ID:                   "15",
			Name:                 "Platinum Stud Earrings",
			Category:             "Platinum Jewelry",
			Description:          "Simple yet elegant platinum stud earrings. Perfect for daily wear and hypoallergenic for sensitive ears.",
			ImageURL:             "/images/craftsmanship.jpg",
			Weight:               2.5,
			PlatinumPurity:       "pure",
			MakingChargesPercent: 18,
			BasePrice:            42000,
			RatingAvg:            4.9,
			RatingCount:          28,
			Badges:               []string{"premium", "hypoallergenic", "daily-wear"},
			Specifications: []model.ProductSpec{
				{Label: "Metal Purity", Value: "95% Platinum (Pt950)"},
				{Label: "Weight", Value: "2.5 grams"},
				{Label: "Diameter", Value: "6mm"},
				{Label: "Thickness", Value: "2mm"},
				{Label: "Back Type", Value: "Butterfly back"},
				{Label: "Finish", Value: "Brushed matte"},
				{Label: "Certification", Value: "Platinum Guild certified"},
			},
			Features: []string{
				"Hypoallergenic platinum",
				"Comfortable daily wear",
				"Secure butterfly backs",
				"Brushed finish elegance",
				"Lifetime durability",
			},
			InStock:   true,
			SortOrder: 15,
		},
	}
}
