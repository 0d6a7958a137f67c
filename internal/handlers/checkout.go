package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type checkoutItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type checkoutAddressRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type checkoutQuoteRequest struct {
	Items []checkoutItemRequest `json:"items" binding:"required"`
}

type createOrderRequest struct {
	Items           []checkoutItemRequest   `json:"items" binding:"required"`
	UseSavedAddress bool                    `json:"useSavedAddress"`
	SavedAddressID  string                  `json:"savedAddressId"`
	Address         *checkoutAddressRequest `json:"address"`
}

/* =========================
   ADDRESS RESOLUTION
========================= */

// resolveOrderAddress enforces the submit gate: either a saved address is
// selected and exists on the user, or the new-address form is fully
// populated. Failing both blocks the order before anything is written.
func resolveOrderAddress(user models.User, req createOrderRequest) (models.Address, error) {
	if req.UseSavedAddress {
		id := strings.TrimSpace(req.SavedAddressID)
		if id == "" {
			return models.Address{}, errors.New("savedAddressId required when using a saved address")
		}
		for _, addr := range user.Addresses {
			if addr.ID == id {
				return addr, nil
			}
		}
		return models.Address{}, errors.New("saved address not found")
	}

	if req.Address == nil {
		return models.Address{}, errors.New("address required")
	}

	name := strings.TrimSpace(req.Address.Name)
	phone := strings.TrimSpace(req.Address.Phone)
	line1 := strings.TrimSpace(req.Address.Line1)
	city := strings.TrimSpace(req.Address.City)
	postalCode := strings.TrimSpace(req.Address.PostalCode)

	if name == "" || phone == "" || line1 == "" || city == "" || postalCode == "" {
		return models.Address{}, errors.New("name, phone, line1, city and postalCode are required")
	}

	return models.Address{
		ID:         uuid.NewString(),
		Name:       name,
		Phone:      phone,
		Line1:      line1,
		Line2:      strings.TrimSpace(req.Address.Line2),
		City:       city,
		PostalCode: postalCode,
	}, nil
}

func parseCheckoutItems(items []checkoutItemRequest) (map[primitive.ObjectID]int, error) {
	if len(items) == 0 {
		return nil, errors.New("at least one item is required")
	}

	quantities := make(map[primitive.ObjectID]int, len(items))
	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, errors.New("invalid productId")
		}
		if item.Quantity <= 0 {
			return nil, errors.New("quantity must be greater than zero")
		}
		quantities[productID] += item.Quantity
	}
	return quantities, nil
}

/* =========================
   QUOTE
========================= */

/*
POST /checkout/quote
- Prices the cart from current product data without persisting anything.
*/
func QuoteCheckout(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/quote"
		defer handlePanic(c, route)

		var req checkoutQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		quantities, err := parseCheckoutItems(req.Items)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orderItems := make([]models.OrderItem, 0, len(quantities))
		for productID, quantity := range quantities {
			product, err := findProductByID(ctx, db, productID)
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusBadRequest, route, "product not found")
				return
			}
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID: productID,
				Name:      product.Name,
				Price:     effectiveProductPrice(product.Price, product.DiscountPrice),
				Quantity:  quantity,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"items":  orderItems,
			"totals": computeTotals(orderItems),
		})
	}
}

/* =========================
   CREATE ORDER
========================= */

type outOfStockError struct {
	ProductID primitive.ObjectID
	Available int
	Requested int
}

func (e outOfStockError) Error() string {
	return "product out of stock"
}

type productNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e productNotFoundError) Error() string {
	return "product not found"
}

/*
POST /orders (authenticated)
- Totals are recomputed server-side from current prices; stock is checked
  and decremented in one transaction.
*/
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		userID, ok := c.MustGet("userId").(primitive.ObjectID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		quantities, err := parseCheckoutItems(req.Items)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusUnauthorized, route, "user not found")
			return
		}

		address, err := resolveOrderAddress(user, req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var order models.Order
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			orderItems := make([]models.OrderItem, 0, len(quantities))

			for productID, quantity := range quantities {
				var product models.Product
				err := db.Collection("products").FindOne(
					sessCtx,
					bson.M{
						"_id":       productID,
						"isDeleted": bson.M{"$ne": true},
					},
				).Decode(&product)
				if err == mongo.ErrNoDocuments {
					return nil, productNotFoundError{ProductID: productID}
				}
				if err != nil {
					return nil, err
				}

				if product.Stock < quantity {
					return nil, outOfStockError{
						ProductID: productID,
						Available: product.Stock,
						Requested: quantity,
					}
				}

				orderItems = append(orderItems, models.OrderItem{
					ProductID: productID,
					Name:      product.Name,
					Price:     effectiveProductPrice(product.Price, product.DiscountPrice),
					Quantity:  quantity,
				})

				filter := bson.M{
					"_id":       productID,
					"isDeleted": bson.M{"$ne": true},
					"stock":     bson.M{"$gte": quantity},
				}
				update := bson.M{"$inc": bson.M{
					"stock":      -quantity,
					"salesCount": quantity,
				}}

				res, err := db.Collection("products").UpdateOne(sessCtx, filter, update)
				if err != nil {
					return nil, err
				}
				if res.MatchedCount == 0 {
					return nil, outOfStockError{
						ProductID: productID,
						Available: product.Stock,
						Requested: quantity,
					}
				}
			}

			order = models.Order{
				UserID:    userID,
				Items:     orderItems,
				Totals:    computeTotals(orderItems),
				Address:   address,
				Status:    "pending",
				CreatedAt: time.Now(),
			}

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				order.ID = id
			}
			return nil, nil
		})
		if err != nil {
			var stockErr outOfStockError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "insufficient stock",
					"productId": stockErr.ProductID.Hex(),
					"available": stockErr.Available,
					"requested": stockErr.Requested,
				})
				return
			}
			var notFoundErr productNotFoundError
			if errors.As(err, &notFoundErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "product not found",
					"productId": notFoundErr.ProductID.Hex(),
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order created for user:", userID.Hex())

		c.JSON(http.StatusCreated, gin.H{
			"orderId": order.ID.Hex(),
			"totals":  order.Totals,
			"message": "order created",
		})
	}
}

/*
GET /orders (authenticated)
- The caller's own orders, newest first.
*/
func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.MustGet("userId").(primitive.ObjectID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders could not be fetched"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}
