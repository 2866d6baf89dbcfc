package render

import "rapv/site/internal/models"

var bt = models.Text

var labels = map[string]models.BilingualText{
	"home":               bt("Home", "होम"),
	"about":              bt("About", "हमारे बारे में"),
	"facilities":         bt("Facilities", "सुविधाएँ"),
	"staff":              bt("Staff", "स्टाफ"),
	"results":            bt("Results", "परिणाम"),
	"events":             bt("Events", "कार्यक्रम"),
	"login":              bt("Admin Login", "एडमिन लॉगिन"),
	"logout":             bt("Logout", "लॉग आउट"),
	"switchLanguage":     bt("हिंदी", "English"),
	"govtInitiative":     bt("An initiative of the Government of Uttar Pradesh", "उत्तर प्रदेश सरकार की एक पहल"),
	"discoverMore":       bt("Discover More", "और जानें"),
	"news":               bt("Latest News", "ताज़ा समाचार"),
	"newsSub":            bt("Stay updated with the latest announcements, exam schedules, and school activities.", "नवीनतम घोषणाओं, परीक्षा कार्यक्रमों और स्कूल गतिविधियों से अपडेट रहें।"),
	"new":                bt("NEW", "नया"),
	"postedOn":           bt("Posted on", "प्रकाशित"),
	"readMore":           bt("Read more", "और पढ़ें"),
	"openLink":           bt("Open link", "लिंक खोलें"),
	"close":              bt("Close", "बंद करें"),
	"aboutUs":            bt("About Us", "हमारे बारे में"),
	"aboutTitle":         bt("Empowering Minds, Shaping Futures", "मन को सशक्त बनाना, भविष्य को आकार देना"),
	"established":        bt("Established", "स्थापना"),
	"capacity":           bt("Student Capacity", "छात्र क्षमता"),
	"infrastructure":     bt("Infrastructure", "बुनियादी ढांचा"),
	"facilitiesTitle":    bt("World-Class Facilities", "उत्कृष्ट सुविधाएँ"),
	"facilitiesSub":      bt("We provide a holistic environment for the overall development of our students.", "हम अपने छात्रों के सर्वांगीण विकास के लिए समग्र वातावरण प्रदान करते हैं।"),
	"ourStaff":           bt("Our Staff", "हमारा स्टाफ"),
	"name":               bt("Name", "नाम"),
	"designation":        bt("Designation", "पद"),
	"subject":            bt("Subject", "विषय"),
	"academicStreams":    bt("Academic Streams", "शैक्षणिक संकाय"),
	"performance":        bt("Performance", "प्रदर्शन"),
	"academicExcellence": bt("Academic Excellence", "शैक्षणिक उत्कृष्टता"),
	"class10":            bt("Class 10", "कक्षा 10"),
	"class12":            bt("Class 12", "कक्षा 12"),
	"total":              bt("Total", "कुल"),
	"passed":             bt("Passed", "उत्तीर्ण"),
	"rate":               bt("Pass %", "उत्तीर्ण %"),
	"toppers":            bt("Toppers", "टॉपर्स"),
	"noData":             bt("No data available", "कोई डेटा उपलब्ध नहीं"),
	"lifeAtCampus":       bt("Life at Campus", "परिसर में जीवन"),
	"lifeSub":            bt("Glimpses of events and activities", "कार्यक्रमों और गतिविधियों की झलक"),
	"contact":            bt("Contact Us", "संपर्क करें"),
	"quickLinks":         bt("Quick Links", "त्वरित लिंक"),
	"rights":             bt("All rights reserved.", "सर्वाधिकार सुरक्षित।"),
	"passTrend":          bt("Pass percentage trend", "उत्तीर्ण प्रतिशत रुझान"),
	"invalidLogin":       bt("Invalid credentials, please try again.", "अमान्य विवरण, कृपया पुनः प्रयास करें।"),
}

var introText = bt(
	"Rajkiya Ashram Paddhati Vidyalaya, District Saharanpur, was established in 2008 and became operational in 2011. The school has a total student capacity of 490. This institution caters specifically to socially and economically weaker sections, providing free education, uniforms, housing, daily necessities, study materials, and computer facilities to students from rural and urban areas.",
	"राजकीय आश्रम पद्धति विद्यालय, जनपद सहारनपुर की स्थापना 2008 में हुई तथा 2011 से इसका संचालन प्रारंभ हुआ। विद्यालय की कुल छात्र क्षमता 490 है। यह संस्था विशेष रूप से सामाजिक एवं आर्थिक रूप से कमजोर वर्गों के लिए है, जहाँ ग्रामीण एवं शहरी क्षेत्रों के छात्रों को निःशुल्क शिक्षा, गणवेश, आवास, दैनिक आवश्यकताएँ, अध्ययन सामग्री एवं कंप्यूटर सुविधा प्रदान की जाती है।",
)

// FacultyStreams is the fixed list of senior secondary streams.
var FacultyStreams = []models.FacultyStream{
	{
		Name: bt("Arts Faculty", "कला संकाय"),
		Subjects: []models.BilingualText{
			bt("Hindi", "हिंदी"), bt("English", "अंग्रेज़ी"), bt("Sociology", "समाजशास्त्र"),
			bt("Economics", "अर्थशास्त्र"), bt("History", "इतिहास"), bt("Physical Education", "शारीरिक शिक्षा"),
		},
	},
	{
		Name: bt("Science Faculty", "विज्ञान संकाय"),
		Subjects: []models.BilingualText{
			bt("Hindi", "हिंदी"), bt("English", "अंग्रेज़ी"), bt("Physics", "भौतिकी"),
			bt("Chemistry", "रसायन विज्ञान"), bt("Biology / Mathematics", "जीव विज्ञान / गणित"), bt("Physical Education", "शारीरिक शिक्षा"),
		},
	},
}

// Label resolves a UI label, returning the key itself for unknown labels.
func Label(key string, lang models.Language) string {
	text, ok := labels[key]
	if !ok {
		return key
	}
	return models.Resolve(text, lang, lang.Other())
}
