package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/scentlog/scentlog/internal/domain/entity"
)

// JSON shapes for the API. Entities stay tag-free; the wire format is decided
// here.

func perfumeJSON(p *entity.Perfume) gin.H {
	return gin.H{
		"id":                 p.ID,
		"name":               p.Name,
		"brand":              p.Brand,
		"designer":           p.Designer,
		"country":            p.Country,
		"category":           p.Category,
		"release_year":       p.ReleaseYear,
		"price":              p.Price,
		"description":        p.Description,
		"notes_top":          p.NotesTop,
		"notes_middle":       p.NotesMiddle,
		"notes_base":         p.NotesBase,
		"image_url":          p.ImageURL,
		"buy_link":           p.BuyLink,
		"buy_click_count":    p.BuyClickCount,
		"average_rating":     p.AverageRating,
		"average_longevity":  p.AverageLongevity,
		"average_projection": p.AverageProjection,
		"average_sillage":    p.AverageSillage,
		"total_reviews":      p.TotalReviews,
		"created_at":         p.CreatedAt,
		"updated_at":         p.UpdatedAt,
	}
}

func perfumesJSON(items []entity.Perfume) []gin.H {
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, perfumeJSON(&items[i]))
	}
	return out
}

func reviewJSON(rv *entity.Review) gin.H {
	out := gin.H{
		"id":         rv.ID,
		"user_id":    rv.UserID,
		"perfume_id": rv.PerfumeID,
		"rating":     rv.Rating,
		"longevity":  rv.Longevity,
		"projection": rv.Projection,
		"sillage":    rv.Sillage,
		"comment":    rv.Comment,
		"created_at": rv.CreatedAt,
		"updated_at": rv.UpdatedAt,
	}
	if rv.ReviewerName != "" {
		out["reviewer"] = gin.H{"name": rv.ReviewerName, "avatar_url": rv.ReviewerAvatar}
	}
	return out
}

func reviewsJSON(items []entity.Review) []gin.H {
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, reviewJSON(&items[i]))
	}
	return out
}

func trendingJSON(items []entity.TrendingPerfume) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, t := range items {
		out = append(out, gin.H{
			"perfume_id":        t.PerfumeID,
			"name":              t.Name,
			"brand":             t.Brand,
			"image_url":         t.ImageURL,
			"category":          t.Category,
			"average_rating":    t.AverageRating,
			"total_reviews":     t.TotalReviews,
			"recent_reviews":    t.RecentReviews,
			"recent_avg_rating": t.RecentAvgRating,
		})
	}
	return out
}

func alsoLikedJSON(items []entity.AlsoLikedPerfume) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, a := range items {
		out = append(out, gin.H{
			"perfume_id":       a.PerfumeID,
			"name":             a.Name,
			"brand":            a.Brand,
			"image_url":        a.ImageURL,
			"category":         a.Category,
			"average_rating":   a.AverageRating,
			"total_reviews":    a.TotalReviews,
			"match_count":      a.MatchCount,
			"match_avg_rating": a.MatchAvgRating,
		})
	}
	return out
}

func replyJSON(rp *entity.Reply) gin.H {
	out := gin.H{
		"id":            rp.ID,
		"discussion_id": rp.DiscussionID,
		"user_id":       rp.UserID,
		"content":       rp.Content,
		"like_count":    rp.LikeCount,
		"created_at":    rp.CreatedAt,
	}
	if rp.AuthorName != "" {
		out["author"] = gin.H{"name": rp.AuthorName, "avatar_url": rp.AuthorAvatar}
	}
	return out
}

func discussionJSON(d *entity.Discussion, withReplies bool) gin.H {
	out := gin.H{
		"id":          d.ID,
		"title":       d.Title,
		"content":     d.Content,
		"user_id":     d.UserID,
		"perfume_id":  d.PerfumeID,
		"tags":        d.Tags,
		"reply_count": d.ReplyCount,
		"like_count":  d.LikeCount,
		"created_at":  d.CreatedAt,
		"updated_at":  d.UpdatedAt,
	}
	if d.AuthorName != "" {
		out["author"] = gin.H{"name": d.AuthorName, "avatar_url": d.AuthorAvatar}
	}
	if d.PerfumeID != nil && d.PerfumeName != "" {
		out["perfume"] = gin.H{"name": d.PerfumeName, "brand": d.PerfumeBrand}
	}
	if withReplies {
		replies := make([]gin.H, 0, len(d.Replies))
		for i := range d.Replies {
			replies = append(replies, replyJSON(&d.Replies[i]))
		}
		out["replies"] = replies
	}
	return out
}

func discussionsJSON(items []entity.Discussion) []gin.H {
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, discussionJSON(&items[i], false))
	}
	return out
}

// pageMeta is the standard pagination block in list responses.
func pageMeta(page, limit, total int) gin.H {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	pages := (total + limit - 1) / limit
	return gin.H{"page": page, "limit": limit, "total": total, "total_pages": pages}
}
