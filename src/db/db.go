package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/olivere/elastic/v7"

	"launderette-finder/src/types"
)

// Index names, one per collection in the document store.
const (
	IndexLaunderettes = "launderettes"
	IndexReviews      = "reviews"
	IndexBlogPosts    = "blog_posts"
	IndexContacts     = "contact_submissions"
	IndexCorrections  = "corrections"
	IndexAnalytics    = "analytics_events"
)

type ElasticStore struct {
	Client *elastic.Client
}

func NewElasticStore(url string) (*ElasticStore, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, fmt.Errorf("elastic: create client: %w", err)
	}
	return &ElasticStore{Client: client}, nil
}

// EnsureIndexes creates every index that does not exist yet. Only the
// launderettes index needs an explicit mapping (geo_point); the rest use
// dynamic mapping.
func (es *ElasticStore) EnsureIndexes(schemaDir string) error {
	ctx := context.Background()

	if err := es.createIndexWithMapping(ctx, IndexLaunderettes,
		filepath.Join(schemaDir, "launderettes_schema.json")); err != nil {
		return err
	}

	for _, index := range []string{
		IndexReviews, IndexBlogPosts, IndexContacts, IndexCorrections, IndexAnalytics,
	} {
		exists, err := es.Client.IndexExists(index).Do(ctx)
		if err != nil {
			return fmt.Errorf("elastic: check index %s: %w", index, err)
		}
		if exists {
			continue
		}
		if _, err := es.Client.CreateIndex(index).Do(ctx); err != nil {
			return fmt.Errorf("elastic: create index %s: %w", index, err)
		}
	}
	return nil
}

func (es *ElasticStore) createIndexWithMapping(ctx context.Context, index, pathStruct string) error {
	exists, err := es.Client.IndexExists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("elastic: check index %s: %w", index, err)
	}
	if exists {
		return nil
	}

	schemaBytes, err := os.ReadFile(pathStruct)
	if err != nil {
		return fmt.Errorf("elastic: read schema %s: %w", pathStruct, err)
	}

	createIndex, err := es.Client.CreateIndex(index).BodyString(string(schemaBytes)).Do(ctx)
	if err != nil {
		return fmt.Errorf("elastic: create index %s: %w", index, err)
	}
	if !createIndex.Acknowledged {
		log.Println("CreateIndex was not acknowledged. Check that timeout value is correct.")
	}
	return nil
}

func (es *ElasticStore) GetListings(limit, offset int) ([]types.Listing, int, error) {
	ctx := context.Background()

	searchResult, err := es.Client.Search().
		Index(IndexLaunderettes).
		Query(elastic.NewMatchAllQuery()).
		Sort("name.keyword", true).
		Size(limit).
		From(offset).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	listings := decodeListings(searchResult)

	count, err := es.Client.Count().Index(IndexLaunderettes).Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	return listings, int(count), nil
}

func (es *ElasticStore) SearchListings(query, city string, limit, offset int) ([]types.Listing, int, error) {
	ctx := context.Background()

	q := elastic.NewBoolQuery()
	if query != "" {
		q.Must(elastic.NewMultiMatchQuery(query, "name", "address", "description", "features"))
	} else {
		q.Must(elastic.NewMatchAllQuery())
	}
	if city != "" {
		q.Filter(elastic.NewTermQuery("city.keyword", city))
	}

	searchResult, err := es.Client.Search().
		Index(IndexLaunderettes).
		Query(q).
		Size(limit).
		From(offset).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	total := int(searchResult.TotalHits())
	return decodeListings(searchResult), total, nil
}

// GetNearbyListings returns the closest listings sorted by arc distance,
// with the distance of each hit in miles.
func (es *ElasticStore) GetNearbyListings(lat, lon float64, limit int) ([]types.NearbyListing, error) {
	ctx := context.Background()

	searchResult, err := es.Client.Search().
		Index(IndexLaunderettes).
		Query(elastic.NewMatchAllQuery()).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(lat, lon).
			Asc().
			Unit("mi").
			DistanceType("arc").
			IgnoreUnmapped(true)).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []types.NearbyListing
	for _, hit := range searchResult.Hits.Hits {
		var listing types.Listing
		if err := json.Unmarshal(hit.Source, &listing); err != nil {
			log.Printf("Error unmarshalling hit source: %s", err)
			continue
		}
		listing.ID = hit.Id
		listing.Normalize()

		n := types.NearbyListing{Listing: listing}
		if len(hit.Sort) > 0 {
			if d, ok := hit.Sort[0].(float64); ok {
				n.DistanceMiles = d
			}
		}
		nearby = append(nearby, n)
	}

	return nearby, nil
}

func (es *ElasticStore) GetListing(id string) (*types.Listing, error) {
	ctx := context.Background()

	result, err := es.Client.Get().Index(IndexLaunderettes).Id(id).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var listing types.Listing
	if err := json.Unmarshal(result.Source, &listing); err != nil {
		return nil, err
	}
	listing.ID = result.Id
	listing.Normalize()
	return &listing, nil
}

func (es *ElasticStore) DeleteListing(id string) error {
	ctx := context.Background()

	_, err := es.Client.Delete().Index(IndexLaunderettes).Id(id).Do(ctx)
	if elastic.IsNotFound(err) {
		return types.ErrNotFound
	}
	return err
}

func (es *ElasticStore) GetReviews(launderetteID string) ([]types.Review, error) {
	ctx := context.Background()

	searchResult, err := es.Client.Search().
		Index(IndexReviews).
		Query(elastic.NewTermQuery("launderetteId.keyword", launderetteID)).
		Sort("createdAt", false).
		Size(100).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	var reviews []types.Review
	for _, hit := range searchResult.Hits.Hits {
		var review types.Review
		if err := json.Unmarshal(hit.Source, &review); err != nil {
			continue
		}
		review.ID = hit.Id
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func (es *ElasticStore) InsertReview(r types.Review) error {
	ctx := context.Background()
	_, err := es.Client.Index().Index(IndexReviews).Id(r.ID).BodyJson(r).Do(ctx)
	return err
}

func (es *ElasticStore) GetBlogPosts() ([]types.BlogPost, error) {
	ctx := context.Background()

	searchResult, err := es.Client.Search().
		Index(IndexBlogPosts).
		Query(elastic.NewMatchAllQuery()).
		Sort("publishedAt", false).
		Size(100).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	var posts []types.BlogPost
	for _, hit := range searchResult.Hits.Hits {
		var post types.BlogPost
		if err := json.Unmarshal(hit.Source, &post); err != nil {
			continue
		}
		post.ID = hit.Id
		posts = append(posts, post)
	}
	return posts, nil
}

func (es *ElasticStore) GetBlogPostBySlug(slug string) (*types.BlogPost, error) {
	ctx := context.Background()

	searchResult, err := es.Client.Search().
		Index(IndexBlogPosts).
		Query(elastic.NewTermQuery("slug.keyword", slug)).
		Size(1).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(searchResult.Hits.Hits) == 0 {
		return nil, nil
	}

	hit := searchResult.Hits.Hits[0]
	var post types.BlogPost
	if err := json.Unmarshal(hit.Source, &post); err != nil {
		return nil, err
	}
	post.ID = hit.Id
	return &post, nil
}

func (es *ElasticStore) InsertContactSubmission(c types.ContactSubmission) error {
	ctx := context.Background()
	_, err := es.Client.Index().Index(IndexContacts).Id(c.ID).BodyJson(c).Do(ctx)
	return err
}

func (es *ElasticStore) InsertCorrection(c types.Correction) error {
	ctx := context.Background()
	_, err := es.Client.Index().Index(IndexCorrections).Id(c.ID).BodyJson(c).Do(ctx)
	return err
}

func (es *ElasticStore) GetCorrectionsByStatus(status string) ([]types.Correction, error) {
	ctx := context.Background()

	searchResult, err := es.Client.Search().
		Index(IndexCorrections).
		Query(elastic.NewTermQuery("status.keyword", status)).
		Sort("createdAt", true).
		Size(200).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	var corrections []types.Correction
	for _, hit := range searchResult.Hits.Hits {
		var c types.Correction
		if err := json.Unmarshal(hit.Source, &c); err != nil {
			continue
		}
		c.ID = hit.Id
		corrections = append(corrections, c)
	}
	return corrections, nil
}

func (es *ElasticStore) UpdateCorrectionStatus(id, status, reviewedBy string) error {
	ctx := context.Background()

	_, err := es.Client.Update().
		Index(IndexCorrections).
		Id(id).
		Doc(map[string]interface{}{
			"status":     status,
			"reviewedAt": time.Now().UTC(),
			"reviewedBy": reviewedBy,
		}).
		Do(ctx)
	if elastic.IsNotFound(err) {
		return types.ErrNotFound
	}
	return err
}

func (es *ElasticStore) InsertAnalyticsEvent(e types.AnalyticsEvent) error {
	ctx := context.Background()
	_, err := es.Client.Index().Index(IndexAnalytics).BodyJson(e).Do(ctx)
	return err
}

// FindListingsByCities returns all listings whose city is in the given
// list. Used by the maintenance tools, not by the live service.
func (es *ElasticStore) FindListingsByCities(cities []string) ([]types.Listing, error) {
	ctx := context.Background()

	values := make([]interface{}, len(cities))
	for i, c := range cities {
		values[i] = c
	}

	searchResult, err := es.Client.Search().
		Index(IndexLaunderettes).
		Query(elastic.NewTermsQuery("city.keyword", values...)).
		Size(10000).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	return decodeListings(searchResult), nil
}

// FindContactsBefore returns contact submissions created before the cutoff.
func (es *ElasticStore) FindContactsBefore(cutoff time.Time) ([]types.ContactSubmission, error) {
	ctx := context.Background()

	searchResult, err := es.Client.Search().
		Index(IndexContacts).
		Query(elastic.NewRangeQuery("createdAt").Lt(cutoff.Format(time.RFC3339))).
		Size(10000).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	var contacts []types.ContactSubmission
	for _, hit := range searchResult.Hits.Hits {
		var c types.ContactSubmission
		if err := json.Unmarshal(hit.Source, &c); err != nil {
			continue
		}
		c.ID = hit.Id
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func (es *ElasticStore) DeleteContactSubmission(id string) error {
	ctx := context.Background()
	_, err := es.Client.Delete().Index(IndexContacts).Id(id).Do(ctx)
	return err
}

func decodeListings(searchResult *elastic.SearchResult) []types.Listing {
	var listings []types.Listing
	for _, hit := range searchResult.Hits.Hits {
		var listing types.Listing
		if err := json.Unmarshal(hit.Source, &listing); err != nil {
			log.Printf("Error unmarshalling hit source: %s", err)
			continue
		}
		listing.ID = hit.Id
		listing.Normalize()
		listings = append(listings, listing)
	}
	return listings
}
