package pubmed

import "encoding/xml"

// ArticleSet is the efetch response envelope.
type ArticleSet struct {
	XMLName xml.Name  `xml:"PubmedArticleSet"`
	Article []Article `xml:"PubmedArticle"`
}

// Article is a single PubmedArticle element from an efetch XML response,
// trimmed to the fields we read.
type Article struct {
	MedlineCitation struct {
		PMID struct {
			Text string `xml:",chardata"`
		} `xml:"PMID"`
		Article struct {
			ArticleTitle struct {
				Text string `xml:",chardata"`
			} `xml:"ArticleTitle"`
			Journal struct {
				ISOAbbreviation string `xml:"ISOAbbreviation"`
				Title           string `xml:"Title"`
				JournalIssue    struct {
					Volume  string `xml:"Volume"`
					Issue   string `xml:"Issue"`
					PubDate Date   `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
			Pagination struct {
				MedlinePgn string `xml:"MedlinePgn"`
			} `xml:"Pagination"`
			ArticleDate []Date `xml:"ArticleDate"`
			AuthorList  struct {
				Author []Author `xml:"Author"`
			} `xml:"AuthorList"`
		} `xml:"Article"`
	} `xml:"MedlineCitation"`
	PubmedData struct {
		ArticleIdList struct {
			ArticleId []ArticleId `xml:"ArticleId"`
		} `xml:"ArticleIdList"`
	} `xml:"PubmedData"`
}

// Date covers both ArticleDate and PubDate elements. PubDate may carry a
// MedlineDate string instead of structured fields.
type Date struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type Author struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
	Initials string `xml:"Initials"`
}

type ArticleId struct {
	IdType string `xml:"IdType,attr"`
	Text   string `xml:",chardata"`
}

// ESearchResult is the esearch response envelope (retmode=json not used;
// NCBI XML is the stable interface).
type ESearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	Count   int64    `xml:"Count"`
	IdList  struct {
		Id []string `xml:"Id"`
	} `xml:"IdList"`
}

// ELinkResult is the elink response for pubmed_pmc links.
type ELinkResult struct {
	XMLName xml.Name `xml:"eLinkResult"`
	LinkSet []struct {
		LinkSetDb []struct {
			LinkName string `xml:"LinkName"`
			Link     []struct {
				Id string `xml:"Id"`
			} `xml:"Link"`
		} `xml:"LinkSetDb"`
	} `xml:"LinkSet"`
}
